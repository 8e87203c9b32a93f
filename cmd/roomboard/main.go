package main

import (
	"github.com/roomboard/roomboard/internal/auth"
	"github.com/roomboard/roomboard/internal/config"
	"github.com/roomboard/roomboard/internal/db"
	"github.com/roomboard/roomboard/internal/email"
	"github.com/roomboard/roomboard/internal/logging"
	"github.com/roomboard/roomboard/internal/notify"
	"github.com/roomboard/roomboard/internal/photostore/local"
	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/store"
	"github.com/roomboard/roomboard/internal/web"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	roomStore := store.NewRoomStore(database)

	var sender email.Sender
	if cfg.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, logger)
	} else {
		sender = email.NewDisabledSender(logger)
	}

	smsClient := notify.NewSMSClient(cfg.SMSGatewayURL, cfg.SMSGatewayKey, logger)

	broker, err := notify.NewBroker(cfg.AmqpURL, cfg.NotifyExchange,
		notify.EndpointDeliverer(sender, smsClient, logger), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to notifications broker")
	}
	defer func() {
		if err := broker.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close broker")
		}
	}()
	if !broker.Enabled() {
		logger.Warn().Msg("AMQP_URL not set; room event notifications disabled")
	}

	photoStg, err := local.NewLocalPhotoStore(cfg.PhotoPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize photo store")
	}

	resolver := auth.NewResolver(cfg.JWTSecret, cfg.AdminGroup)
	roomService := service.NewRoomService(roomStore, broker, smsClient, logger)
	server := web.NewServer(roomService, resolver, photoStg, cfg.CORSOrigin, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error().Err(err).Msg("server error")
	}
}

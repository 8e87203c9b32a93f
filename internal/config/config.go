package config

import "os"

type Config struct {
	ListenAddr     string
	DBPath         string
	AmqpURL        string
	NotifyExchange string
	SMSGatewayURL  string
	SMSGatewayKey  string
	ResendAPIKey   string
	EmailFrom      string
	JWTSecret      string
	AdminGroup     string
	CORSOrigin     string
	PhotoPath      string
	LogLevel       string
	LogFormat      string
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "/data/roomboard.db"),
		AmqpURL:        getEnv("AMQP_URL", ""),
		NotifyExchange: getEnv("NOTIFY_EXCHANGE", "room-events"),
		SMSGatewayURL:  getEnv("SMS_GATEWAY_URL", ""),
		SMSGatewayKey:  getEnv("SMS_GATEWAY_KEY", ""),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "notifications@roomboard.local"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AdminGroup:     getEnv("ADMIN_GROUP", "admins"),
		CORSOrigin:     getEnv("CORS_ALLOW_ORIGIN", "*"),
		PhotoPath:      getEnv("PHOTO_LOCAL_PATH", "/data/photos"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

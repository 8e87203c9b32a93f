package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/auth"
	"github.com/roomboard/roomboard/internal/domain"
	"github.com/roomboard/roomboard/internal/notify"
	"github.com/roomboard/roomboard/internal/validate"
)

// roomRepository is the subset of store.RoomStore that RoomService requires.
type roomRepository interface {
	Put(ctx context.Context, room *domain.Room) error
	Get(ctx context.Context, id string) (*domain.Room, error)
	Scan(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, id string, patch *domain.RoomPatch) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
}

// eventBroker is the subset of notify.Broker that RoomService requires.
type eventBroker interface {
	Publish(ctx context.Context, event notify.Event) error
	Subscribe(ctx context.Context, roomID, protocol, endpoint string) (*notify.Subscription, error)
}

// textSender is the subset of notify.SMSClient that RoomService requires.
type textSender interface {
	Send(ctx context.Context, phone, text string) error
}

// RoomService owns the per-operation rules in front of the record store:
// server-side field stamping, validation, ownership checks, and event
// fan-out. Event publication happens after the store mutation commits; a
// publish failure therefore surfaces even though the primary effect stuck.
type RoomService struct {
	rooms  roomRepository
	events eventBroker
	sms    textSender
	logger zerolog.Logger
}

func NewRoomService(rooms roomRepository, events eventBroker, sms textSender, logger zerolog.Logger) *RoomService {
	return &RoomService{
		rooms:  rooms,
		events: events,
		sms:    sms,
		logger: logger.With().Str("component", "rooms").Logger(),
	}
}

// Create persists a new listing from body. The id and both owner fields are
// server-assigned; anything the client sent for them is discarded.
func (s *RoomService) Create(ctx context.Context, identity *auth.Identity, body *domain.RoomPatch) (*domain.Room, error) {
	if identity == nil || identity.UserID == "" {
		return nil, ErrUnauthorized
	}

	room := body.Materialize()
	room.ID = uuid.NewString()
	room.OwnerID = identity.UserID
	room.OwnerName = identity.UserName
	if room.OwnerName == "" {
		room.OwnerName = "owner"
	}

	if err := validate.Room(room); err != nil {
		return nil, err
	}

	if err := s.rooms.Put(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info().Str("room_id", room.ID).Str("owner_id", room.OwnerID).Msg("room created")

	err := s.events.Publish(ctx, notify.Event{
		Type:       notify.EventCreated,
		RoomID:     room.ID,
		Title:      room.Title,
		OwnerName:  room.OwnerName,
		OwnerEmail: room.ContactEmail,
	})
	if err != nil {
		return nil, err
	}

	return room, nil
}

// Get returns the listing with the given id.
func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.rooms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &NotFoundError{ID: id}
	}
	return room, nil
}

// List returns every listing. The store has no secondary indexes, so this is
// a full scan.
func (s *RoomService) List(ctx context.Context) ([]*domain.Room, error) {
	return s.rooms.Scan(ctx)
}

// Update applies a partial patch to an existing listing. Only the record's
// owner or an admin may update, judged against the record as fetched here;
// there is no optimistic-concurrency token, so a concurrent delete between
// this check and the store write is reported as not-found.
func (s *RoomService) Update(ctx context.Context, identity *auth.Identity, id string, patch *domain.RoomPatch) (*domain.Room, error) {
	existing, err := s.rooms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{ID: id}
	}

	if identity == nil || identity.UserID == "" {
		return nil, ErrUnauthorized
	}
	if !identity.IsAdmin && existing.OwnerID != identity.UserID {
		return nil, &ForbiddenError{Message: "You can only update your own listings"}
	}

	if patch.Empty() {
		return nil, &validate.ValidationError{Message: "No valid fields to update"}
	}
	if err := validate.Patch(patch); err != nil {
		return nil, err
	}

	updated, err := s.rooms.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &NotFoundError{ID: id}
	}
	s.logger.Info().Str("room_id", id).Str("user_id", identity.UserID).Msg("room updated")

	err = s.events.Publish(ctx, notify.Event{
		Type:       notify.EventUpdated,
		RoomID:     updated.ID,
		Title:      updated.Title,
		OwnerName:  updated.OwnerName,
		OwnerEmail: updated.ContactEmail,
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a listing. Ownership rules match Update. Deletion is
// immediate; there is no soft delete.
func (s *RoomService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	existing, err := s.rooms.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{ID: id}
	}

	if identity == nil || identity.UserID == "" {
		return ErrUnauthorized
	}
	if !identity.IsAdmin && existing.OwnerID != identity.UserID {
		return &ForbiddenError{Message: "You can only delete your own listings"}
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("room_id", id).Str("user_id", identity.UserID).Msg("room deleted")

	return s.events.Publish(ctx, notify.Event{
		Type:       notify.EventDeleted,
		RoomID:     id,
		Title:      existing.Title,
		OwnerName:  existing.OwnerName,
		OwnerEmail: existing.ContactEmail,
	})
}

// Subscribe registers an email or sms endpoint for one listing's events.
func (s *RoomService) Subscribe(ctx context.Context, roomID, protocol, endpoint string) (*notify.Subscription, error) {
	if roomID == "" || protocol == "" || endpoint == "" {
		return nil, &validate.ValidationError{Message: "roomId, protocol, and endpoint are required"}
	}

	switch protocol {
	case notify.ProtocolEmail:
		if !validate.Email(endpoint) {
			return nil, &validate.ValidationError{Message: "Invalid email format"}
		}
	case notify.ProtocolSMS:
		if !validate.Phone(endpoint) {
			return nil, &validate.ValidationError{Message: "Invalid phone format, use E.164 like +15551234567"}
		}
	default:
		return nil, &validate.ValidationError{Message: "protocol must be email or sms"}
	}

	return s.events.Subscribe(ctx, roomID, protocol, endpoint)
}

// Contact sends an inquiry about a listing straight to the owner's phone.
func (s *RoomService) Contact(ctx context.Context, roomID, message, fromEmail string) error {
	if roomID == "" || message == "" {
		return &validate.ValidationError{Message: "roomId and message are required"}
	}
	if fromEmail != "" && !validate.Email(fromEmail) {
		return &validate.ValidationError{Message: "Invalid email format"}
	}

	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return &NotFoundError{ID: roomID}
	}
	if room.ContactPhone == "" {
		return &validate.ValidationError{Message: "Owner has no phone number set"}
	}

	title := room.Title
	if title == "" {
		title = "your listing"
	}
	text := fmt.Sprintf("Inquiry for %q: %s", title, message)
	if fromEmail != "" {
		text += fmt.Sprintf(" (reply: %s)", fromEmail)
	}

	if err := s.sms.Send(ctx, room.ContactPhone, text); err != nil {
		return err
	}
	s.logger.Info().Str("room_id", roomID).Msg("owner contacted")
	return nil
}

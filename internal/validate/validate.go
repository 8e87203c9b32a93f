package validate

import (
	"fmt"
	"regexp"

	"github.com/roomboard/roomboard/internal/domain"
)

// MissingFieldError reports a required room field that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Value for %s expected!", e.Field)
}

// ValidationError reports a present field whose value is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// JSONError reports a request body that could not be decoded at all. It is
// raised by the HTTP layer before field-level validation runs.
type JSONError struct {
	Err error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("invalid JSON body: %v", e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
)

// Email reports whether s looks like local@domain.tld.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s is an E.164 phone number.
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Room checks a full record before it is persisted. Required fields are
// checked in a fixed order so the first missing one is the one reported; the
// service stamps id, ownerId and ownerName before calling this, so a client
// omitting them is irrelevant.
func Room(room *domain.Room) error {
	if room.ID == "" {
		return &MissingFieldError{Field: "id"}
	}
	if room.Address == "" {
		return &MissingFieldError{Field: "address"}
	}
	if room.Title == "" {
		return &MissingFieldError{Field: "title"}
	}
	if room.ContactEmail == "" {
		return &MissingFieldError{Field: "contactEmail"}
	}
	if !Email(room.ContactEmail) {
		return &ValidationError{Message: "Invalid email format"}
	}
	if room.ContactPhone != "" && !Phone(room.ContactPhone) {
		return &ValidationError{Message: "Invalid phone format, use E.164 like +15551234567"}
	}
	return nil
}

// Patch format-checks only the fields present in a partial update.
func Patch(patch *domain.RoomPatch) error {
	if patch.ContactEmail != nil && !Email(*patch.ContactEmail) {
		return &ValidationError{Message: "Invalid email format"}
	}
	if patch.ContactPhone != nil && *patch.ContactPhone != "" && !Phone(*patch.ContactPhone) {
		return &ValidationError{Message: "Invalid phone format, use E.164 like +15551234567"}
	}
	return nil
}

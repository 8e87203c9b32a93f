package service

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means no identity could be resolved for a mutating
// operation.
var ErrUnauthorized = errors.New("Unauthorized")

// NotFoundError means no record exists under the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Room with id %s not found", e.ID)
}

// ForbiddenError means the caller is neither the record's owner nor an
// admin.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

package entity

import (
	"errors"
	"fmt"
)

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// Ticket errors
	ErrTicketNotFound = errors.New("ticket not found")

	// Engagement errors
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment text must not be empty")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already registered")

	// Auth errors
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden operation")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)

// InsufficientTicketsError reports a rejected purchase together with the
// inventory actually available at decision time.
type InsufficientTicketsError struct {
	Requested int
	Available int
}

func (e *InsufficientTicketsError) Error() string {
	return fmt.Sprintf("not enough tickets: requested %d, available %d", e.Requested, e.Available)
}

package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanekaBm/eventhub/internal/entity"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps the service error taxonomy onto HTTP statuses. Messages
// are surfaced verbatim; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	var insufficient *entity.InsufficientTicketsError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrEmptyComment),
		errors.Is(err, entity.ErrEmailTaken):
		status = http.StatusBadRequest
	case errors.As(err, &insufficient):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthenticated),
		errors.Is(err, entity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrCommentNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrTicketNotFound):
		status = http.StatusNotFound
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

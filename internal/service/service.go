package service

import (
	"context"
	"mime/multipart"

	"github.com/DanekaBm/eventhub/internal/entity"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID    int64       `json:"user_id"`
	Role      entity.Role `json:"role"`
	SessionID string      `json:"-"`
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, string, error)
	Login(ctx context.Context, req *LoginRequest) (*entity.User, string, error)
	Logout(ctx context.Context, sessionID string) error

	// Authenticate resolves a session token to a live principal. It fails
	// when the token is invalid, the session was revoked, or the user no
	// longer exists.
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

type UserService interface {
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*entity.User, error)
	ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error
	SetAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error)

	// Admin operations
	GetAllUsers(ctx context.Context, requesterRole entity.Role) ([]*entity.User, error)
	DeleteUser(ctx context.Context, requesterRole entity.Role, targetID int64) error
}

type EventService interface {
	CreateEvent(ctx context.Context, creatorID int64, req *CreateEventRequest) (*entity.EventView, error)
	UpdateEvent(ctx context.Context, eventID, requesterID int64, role entity.Role, req *UpdateEventRequest) (*entity.EventView, error)
	DeleteEvent(ctx context.Context, eventID, requesterID int64, role entity.Role) error
	SetEventImage(ctx context.Context, eventID, requesterID int64, role entity.Role, file *multipart.FileHeader) (string, error)

	// Read layer
	ListEvents(ctx context.Context, filter *entity.EventFilter) ([]*entity.EventListItem, error)
	GetEvent(ctx context.Context, id int64) (*entity.EventView, error)
}

type EngagementService interface {
	ToggleLike(ctx context.Context, eventID, userID int64) (*entity.EventView, error)
	ToggleDislike(ctx context.Context, eventID, userID int64) (*entity.EventView, error)
	AddComment(ctx context.Context, eventID, userID int64, text string) (*entity.EventView, error)
	RemoveComment(ctx context.Context, eventID int64, commentID string, requesterID int64, requesterRole entity.Role) (*entity.EventView, error)
}

type TicketService interface {
	// Purchase converts a requested quantity into an inventory decrement
	// plus an immutable receipt, or rejects cleanly.
	Purchase(ctx context.Context, eventID, requesterID int64, quantity int) (*PurchaseResult, error)
	MyTickets(ctx context.Context, userID int64) ([]*entity.TicketWithEvent, error)

	// GetTicket returns a single receipt; only its owner or an admin may
	// read it.
	GetTicket(ctx context.Context, ticketID, requesterID int64, role entity.Role) (*entity.Ticket, error)
}

// PurchaseResult echoes the post-purchase availability with the receipt.
type PurchaseResult struct {
	AvailableTickets int            `json:"available_tickets"`
	Ticket           *entity.Ticket `json:"ticket"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
}

type CreateEventRequest struct {
	Title            string           `json:"title" binding:"required,min=1,max=255"`
	Description      string           `json:"description" binding:"max=5000"`
	Date             entity.EventTime `json:"date" binding:"required"`
	Location         string           `json:"location" binding:"max=255"`
	Category         string           `json:"category" binding:"max=100"`
	Organizer        string           `json:"organizer" binding:"max=255"`
	Price            float64          `json:"price" binding:"min=0"`
	AvailableTickets int              `json:"available_tickets" binding:"min=0"`
}

type UpdateEventRequest struct {
	Title            *string           `json:"title,omitempty"`
	Description      *string           `json:"description,omitempty"`
	Date             *entity.EventTime `json:"date,omitempty"`
	Location         *string           `json:"location,omitempty"`
	Category         *string           `json:"category,omitempty"`
	Organizer        *string           `json:"organizer,omitempty"`
	Price            *float64          `json:"price,omitempty"`
	AvailableTickets *int              `json:"available_tickets,omitempty"`
}

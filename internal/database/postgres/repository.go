package repository

import (
	"context"

	"github.com/DanekaBm/eventhub/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
	Delete(ctx context.Context, id int64) error

	GetAll(ctx context.Context) ([]*entity.User, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	UpdateImage(ctx context.Context, eventID int64, imageURL string) error
	Delete(ctx context.Context, id int64) error

	// Read layer
	List(ctx context.Context, filter *entity.EventFilter) ([]*entity.EventListItem, error)
	GetView(ctx context.Context, id int64) (*entity.EventView, error)
}

type EngagementRepository interface {
	// ToggleReaction flips membership of userID in the event's set of the
	// given kind. Returns true when the reaction was added, false when it
	// was removed.
	ToggleReaction(ctx context.Context, eventID, userID int64, kind entity.ReactionKind) (bool, error)

	AddComment(ctx context.Context, comment *entity.Comment) error
	GetComment(ctx context.Context, eventID int64, commentID string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, eventID int64, commentID string) error
}

type TicketRepository interface {
	// Purchase atomically decrements the event's inventory and records the
	// receipt in one transaction. Returns the created ticket and the
	// remaining availability.
	Purchase(ctx context.Context, eventID, userID int64, quantity int) (*entity.Ticket, int, error)

	GetByUserID(ctx context.Context, userID int64) ([]*entity.TicketWithEvent, error)
	GetByID(ctx context.Context, id int64) (*entity.Ticket, error)
}

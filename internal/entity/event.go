package entity

import (
	"time"
)

type Event struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Date             time.Time `json:"date" db:"date"`
	Location         string    `json:"location" db:"location"`
	Category         string    `json:"category" db:"category"`
	Organizer        string    `json:"organizer" db:"organizer"`
	ImageURL         string    `json:"image_url,omitempty" db:"image_url"`
	Price            float64   `json:"price" db:"price"`
	AvailableTickets int       `json:"available_tickets" db:"available_tickets"`
	CreatorID        int64     `json:"creator_id" db:"creator_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ReactionKind is an axis of engagement on an event. Likes and dislikes are
// independent sets: toggling one never touches the other.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Rating derives the presentation score from reaction counts. It is
// recomputed on every read and never stored.
func Rating(likes, dislikes int) float64 {
	total := likes + dislikes
	if total == 0 {
		return 0
	}
	return float64(likes) / float64(total) * 10
}

// EventFilter narrows the event listing. Zero values mean "no bound".
type EventFilter struct {
	PriceMin   *float64
	PriceMax   *float64
	TicketsMin *int
	TicketsMax *int
	Category   string
}

// EventView is the populated read model for a single event: creator and
// reaction members expanded to summaries, comments in creation order.
type EventView struct {
	Event
	Creator      UserSummary   `json:"creator"`
	Likers       []UserSummary `json:"likers"`
	Dislikers    []UserSummary `json:"dislikers"`
	Comments     []Comment     `json:"comments"`
	LikeCount    int           `json:"like_count"`
	DislikeCount int           `json:"dislike_count"`
	Rating       float64       `json:"rating"`
}

// EventListItem is the shallow list projection: creator expanded, reaction
// counts only. Likers and comments are not expanded at list scale.
type EventListItem struct {
	Event
	Creator      UserSummary `json:"creator"`
	LikeCount    int         `json:"like_count"`
	DislikeCount int         `json:"dislike_count"`
	Rating       float64     `json:"rating"`
}

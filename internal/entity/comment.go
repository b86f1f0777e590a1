package entity

import (
	"time"
)

// Comment is owned by its event (removed with it). AuthorName is a snapshot
// of the author's display name at comment time, so renames do not rewrite
// history.
type Comment struct {
	ID         string    `json:"id" db:"id"`
	EventID    int64     `json:"event_id" db:"event_id"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Text       string    `json:"text" db:"text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

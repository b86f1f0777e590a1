package entity

import (
	"time"
)

// Ticket is an immutable purchase record. Price is the event's unit price
// captured at purchase time; later price changes never alter the receipt.
type Ticket struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TicketWithEvent decorates a receipt with the referenced event's current
// title and date for the "my tickets" listing. The event may have been
// deleted since purchase, in which case only the receipt fields are set.
type TicketWithEvent struct {
	Ticket
	EventTitle string     `json:"event_title,omitempty"`
	EventDate  *time.Time `json:"event_date,omitempty"`
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/DanekaBm/eventhub/internal/entity"
)

type ticketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// Purchase performs the conditional decrement and the receipt insert in one
// transaction. The UPDATE only matches when enough tickets remain, so two
// concurrent purchases can never drive the counter below zero: the second
// one sees the post-decrement availability and fails cleanly.
func (r *ticketRepository) Purchase(ctx context.Context, eventID, userID int64, quantity int) (*entity.Ticket, int, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var remaining int
	var price float64
	err = tx.QueryRowContext(ctx, `
		UPDATE events
		SET available_tickets = available_tickets - $2, updated_at = $3
		WHERE id = $1 AND available_tickets >= $2
		RETURNING available_tickets, price
	`, eventID, quantity, time.Now()).Scan(&remaining, &price)

	if err == sql.ErrNoRows {
		// Either the event is missing or the inventory is short.
		var available int
		err = tx.QueryRowContext(ctx,
			`SELECT available_tickets FROM events WHERE id = $1`, eventID,
		).Scan(&available)
		if err == sql.ErrNoRows {
			return nil, 0, entity.ErrEventNotFound
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to check availability: %w", err)
		}
		return nil, 0, &entity.InsufficientTicketsError{Requested: quantity, Available: available}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decrement inventory: %w", err)
	}

	ticket := &entity.Ticket{
		EventID:  eventID,
		UserID:   userID,
		Quantity: quantity,
		Price:    price,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO tickets (event_id, user_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, eventID, userID, quantity, price, time.Now()).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert ticket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ticket, remaining, nil
}

func (r *ticketRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.TicketWithEvent, error) {
	// LEFT JOIN: the event may have been deleted after purchase, the receipt
	// still lists.
	query := `
		SELECT t.id, t.event_id, t.user_id, t.quantity, t.price, t.created_at,
			e.title, e.date
		FROM tickets t
		LEFT JOIN events e ON e.id = t.event_id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.TicketWithEvent
	for rows.Next() {
		var t entity.TicketWithEvent
		var title sql.NullString
		var date sql.NullTime
		err := rows.Scan(
			&t.ID,
			&t.EventID,
			&t.UserID,
			&t.Quantity,
			&t.Price,
			&t.CreatedAt,
			&title,
			&date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		if title.Valid {
			t.EventTitle = title.String
		}
		if date.Valid {
			d := date.Time
			t.EventDate = &d
		}
		tickets = append(tickets, &t)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	query := `
		SELECT id, event_id, user_id, quantity, price, created_at
		FROM tickets
		WHERE id = $1
	`

	var t entity.Ticket
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.EventID,
		&t.UserID,
		&t.Quantity,
		&t.Price,
		&t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

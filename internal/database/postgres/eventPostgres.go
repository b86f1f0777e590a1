package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/DanekaBm/eventhub/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, category, organizer,
			image_url, price, available_tickets, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Category,
		event.Organizer,
		event.ImageURL,
		event.Price,
		event.AvailableTickets,
		event.CreatorID,
		time.Now(),
		time.Now(),
	).Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `
		SELECT id, title, description, date, location, category, organizer,
			image_url, price, available_tickets, creator_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.Category,
		&event.Organizer,
		&event.ImageURL,
		&event.Price,
		&event.AvailableTickets,
		&event.CreatorID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, location = $4, category = $5,
			organizer = $6, price = $7, available_tickets = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Category,
		event.Organizer,
		event.Price,
		event.AvailableTickets,
		time.Now(),
		event.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) UpdateImage(ctx context.Context, eventID int64, imageURL string) error {
	query := `UPDATE events SET image_url = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, imageURL, time.Now(), eventID)
	if err != nil {
		return fmt.Errorf("failed to update event image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	// Reactions and comments cascade. Tickets stay: receipts outlive the event.
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) List(ctx context.Context, filter *entity.EventFilter) ([]*entity.EventListItem, error) {
	query := `
		SELECT
			e.id, e.title, e.description, e.date, e.location, e.category, e.organizer,
			e.image_url, e.price, e.available_tickets, e.creator_id, e.created_at, e.updated_at,
			u.id, u.name, u.email,
			COALESCE(SUM(CASE WHEN r.kind = 'like' THEN 1 ELSE 0 END), 0) AS likes,
			COALESCE(SUM(CASE WHEN r.kind = 'dislike' THEN 1 ELSE 0 END), 0) AS dislikes
		FROM events e
		JOIN users u ON u.id = e.creator_id
		LEFT JOIN event_reactions r ON r.event_id = e.id
		WHERE ($1::numeric IS NULL OR e.price >= $1)
			AND ($2::numeric IS NULL OR e.price <= $2)
			AND ($3::integer IS NULL OR e.available_tickets >= $3)
			AND ($4::integer IS NULL OR e.available_tickets <= $4)
			AND ($5::varchar = '' OR e.category = $5)
		GROUP BY e.id, u.id
		ORDER BY e.date
	`

	if filter == nil {
		filter = &entity.EventFilter{}
	}

	rows, err := r.db.QueryContext(ctx, query,
		filter.PriceMin,
		filter.PriceMax,
		filter.TicketsMin,
		filter.TicketsMax,
		filter.Category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.EventListItem
	for rows.Next() {
		var item entity.EventListItem
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Date,
			&item.Location,
			&item.Category,
			&item.Organizer,
			&item.ImageURL,
			&item.Price,
			&item.AvailableTickets,
			&item.CreatorID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Creator.ID,
			&item.Creator.Name,
			&item.Creator.Email,
			&item.LikeCount,
			&item.DislikeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		item.Rating = entity.Rating(item.LikeCount, item.DislikeCount)
		events = append(events, &item)
	}

	return events, rows.Err()
}

func (r *eventRepository) GetView(ctx context.Context, id int64) (*entity.EventView, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &entity.EventView{
		Event:     *event,
		Likers:    []entity.UserSummary{},
		Dislikers: []entity.UserSummary{},
		Comments:  []entity.Comment{},
	}

	creatorQuery := `SELECT id, name, email FROM users WHERE id = $1`
	err = r.db.QueryRowContext(ctx, creatorQuery, event.CreatorID).Scan(
		&view.Creator.ID,
		&view.Creator.Name,
		&view.Creator.Email,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load event creator: %w", err)
	}

	reactionQuery := `
		SELECT r.kind, u.id, u.name, u.email
		FROM event_reactions r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at
	`
	rows, err := r.db.QueryContext(ctx, reactionQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind entity.ReactionKind
		var u entity.UserSummary
		if err := rows.Scan(&kind, &u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		switch kind {
		case entity.ReactionLike:
			view.Likers = append(view.Likers, u)
		case entity.ReactionDislike:
			view.Dislikers = append(view.Dislikers, u)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reactions: %w", err)
	}

	commentQuery := `
		SELECT id, event_id, author_id, author_name, text, created_at
		FROM comments
		WHERE event_id = $1
		ORDER BY created_at
	`
	commentRows, err := r.db.QueryContext(ctx, commentQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var c entity.Comment
		err := commentRows.Scan(&c.ID, &c.EventID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		view.Comments = append(view.Comments, c)
	}
	if err := commentRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	view.LikeCount = len(view.Likers)
	view.DislikeCount = len(view.Dislikers)
	view.Rating = entity.Rating(view.LikeCount, view.DislikeCount)

	return view, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DanekaBm/eventhub/internal/entity"
)

type engagementRepository struct {
	db *sql.DB
}

func NewEngagementRepository(db *sql.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) ToggleReaction(ctx context.Context, eventID, userID int64, kind entity.ReactionKind) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The toggle only inspects its own set: a delete that removes nothing
	// means the user was not a member, so we add.
	result, err := tx.ExecContext(ctx,
		`DELETE FROM event_reactions WHERE event_id = $1 AND user_id = $2 AND kind = $3`,
		eventID, userID, kind,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove reaction: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	added := false
	if removed == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID,
		).Scan(&exists)
		if err != nil {
			return false, fmt.Errorf("failed to check event: %w", err)
		}
		if !exists {
			return false, entity.ErrEventNotFound
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO event_reactions (event_id, user_id, kind) VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			eventID, userID, kind,
		)
		if err != nil {
			return false, fmt.Errorf("failed to add reaction: %w", err)
		}
		added = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return added, nil
}

func (r *engagementRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, event_id, author_id, author_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.EventID,
		comment.AuthorID,
		comment.AuthorName,
		comment.Text,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *engagementRepository) GetComment(ctx context.Context, eventID int64, commentID string) (*entity.Comment, error) {
	query := `
		SELECT id, event_id, author_id, author_name, text, created_at
		FROM comments
		WHERE event_id = $1 AND id = $2
	`

	var c entity.Comment
	err := r.db.QueryRowContext(ctx, query, eventID, commentID).Scan(
		&c.ID,
		&c.EventID,
		&c.AuthorID,
		&c.AuthorName,
		&c.Text,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *engagementRepository) DeleteComment(ctx context.Context, eventID int64, commentID string) error {
	query := `DELETE FROM comments WHERE event_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, eventID, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrCommentNotFound
	}

	return nil
}

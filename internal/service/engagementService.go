package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	repository "github.com/DanekaBm/eventhub/internal/database/postgres"
	"github.com/DanekaBm/eventhub/internal/entity"
)

type engagementService struct {
	engagementRepo repository.EngagementRepository
	eventRepo      repository.EventRepository
	userRepo       repository.UserRepository
}

func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
) EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, eventID, userID int64) (*entity.EventView, error) {
	return s.toggle(ctx, eventID, userID, entity.ReactionLike)
}

func (s *engagementService) ToggleDislike(ctx context.Context, eventID, userID int64) (*entity.EventView, error) {
	return s.toggle(ctx, eventID, userID, entity.ReactionDislike)
}

// toggle flips membership in one reaction set. The other set is left alone:
// like and dislike are independent axes.
func (s *engagementService) toggle(ctx context.Context, eventID, userID int64, kind entity.ReactionKind) (*entity.EventView, error) {
	if _, err := s.engagementRepo.ToggleReaction(ctx, eventID, userID, kind); err != nil {
		return nil, err
	}
	return s.eventRepo.GetView(ctx, eventID)
}

func (s *engagementService) AddComment(ctx context.Context, eventID, userID int64, text string) (*entity.EventView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyComment
	}

	// Validate the event before writing the comment row.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ID:         uuid.New().String(),
		EventID:    eventID,
		AuthorID:   userID,
		AuthorName: author.Name, // snapshot, survives later renames
		Text:       text,
		CreatedAt:  time.Now(),
	}

	if err := s.engagementRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return s.eventRepo.GetView(ctx, eventID)
}

func (s *engagementService) RemoveComment(ctx context.Context, eventID int64, commentID string, requesterID int64, requesterRole entity.Role) (*entity.EventView, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	comment, err := s.engagementRepo.GetComment(ctx, eventID, commentID)
	if err != nil {
		return nil, err
	}

	// A comment's author may always remove it, an admin may remove any.
	if !entity.CanManage(requesterID, requesterRole, comment.AuthorID) {
		return nil, entity.ErrForbidden
	}

	if err := s.engagementRepo.DeleteComment(ctx, eventID, commentID); err != nil {
		return nil, err
	}

	return s.eventRepo.GetView(ctx, eventID)
}

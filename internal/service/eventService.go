package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/sirupsen/logrus"

	repository "github.com/DanekaBm/eventhub/internal/database/postgres"
	"github.com/DanekaBm/eventhub/internal/entity"
	"github.com/DanekaBm/eventhub/pkg/upload"
)

type eventService struct {
	eventRepo repository.EventRepository
	uploads   *upload.Service
}

func NewEventService(eventRepo repository.EventRepository, uploads *upload.Service) EventService {
	return &eventService{
		eventRepo: eventRepo,
		uploads:   uploads,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, creatorID int64, req *CreateEventRequest) (*entity.EventView, error) {
	if req.Price < 0 || req.AvailableTickets < 0 {
		return nil, entity.ErrInvalidInput
	}

	event := &entity.Event{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date.Time,
		Location:         req.Location,
		Category:         req.Category,
		Organizer:        req.Organizer,
		Price:            req.Price,
		AvailableTickets: req.AvailableTickets,
		CreatorID:        creatorID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return s.eventRepo.GetView(ctx, event.ID)
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, requesterID int64, role entity.Role, req *UpdateEventRequest) (*entity.EventView, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !entity.CanManage(requesterID, role, event.CreatorID) {
		return nil, entity.ErrForbidden
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = req.Date.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Organizer != nil {
		event.Organizer = *req.Organizer
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, entity.ErrInvalidInput
		}
		event.Price = *req.Price
	}
	if req.AvailableTickets != nil {
		if *req.AvailableTickets < 0 {
			return nil, entity.ErrInvalidInput
		}
		event.AvailableTickets = *req.AvailableTickets
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.eventRepo.GetView(ctx, eventID)
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, requesterID int64, role entity.Role) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if !entity.CanManage(requesterID, role, event.CreatorID) {
		return entity.ErrForbidden
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}

	if event.ImageURL != "" {
		if err := s.uploads.DeleteByURL(event.ImageURL); err != nil {
			logrus.WithError(err).WithField("event_id", eventID).Warn("failed to remove image of deleted event")
		}
	}

	return nil
}

func (s *eventService) SetEventImage(ctx context.Context, eventID, requesterID int64, role entity.Role, file *multipart.FileHeader) (string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}

	if !entity.CanManage(requesterID, role, event.CreatorID) {
		return "", entity.ErrForbidden
	}

	url, err := s.uploads.SaveImage(file, "events")
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidInput, err)
	}

	if err := s.eventRepo.UpdateImage(ctx, eventID, url); err != nil {
		return "", err
	}

	if event.ImageURL != "" {
		if err := s.uploads.DeleteByURL(event.ImageURL); err != nil {
			logrus.WithError(err).WithField("event_id", eventID).Warn("failed to remove old event image")
		}
	}

	return url, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter *entity.EventFilter) ([]*entity.EventListItem, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.EventView, error) {
	view, err := s.eventRepo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	return view, nil
}

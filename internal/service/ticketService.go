package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/DanekaBm/eventhub/internal/database/postgres"
	"github.com/DanekaBm/eventhub/internal/entity"
)

type ticketService struct {
	ticketRepo repository.TicketRepository
}

func NewTicketService(ticketRepo repository.TicketRepository) TicketService {
	return &ticketService{ticketRepo: ticketRepo}
}

func (s *ticketService) Purchase(ctx context.Context, eventID, requesterID int64, quantity int) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, entity.ErrInvalidInput
	}

	ticket, remaining, err := s.ticketRepo.Purchase(ctx, eventID, requesterID, quantity)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"event_id": eventID,
		"user_id":  requesterID,
		"quantity": quantity,
		"price":    ticket.Price,
	}).Info("tickets purchased")

	return &PurchaseResult{
		AvailableTickets: remaining,
		Ticket:           ticket,
	}, nil
}

func (s *ticketService) GetTicket(ctx context.Context, ticketID, requesterID int64, role entity.Role) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if !entity.CanManage(requesterID, role, ticket.UserID) {
		return nil, entity.ErrForbidden
	}

	return ticket, nil
}

func (s *ticketService) MyTickets(ctx context.Context, userID int64) ([]*entity.TicketWithEvent, error) {
	tickets, err := s.ticketRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	return tickets, nil
}

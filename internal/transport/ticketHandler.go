package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DanekaBm/eventhub/internal/entity"
	"github.com/DanekaBm/eventhub/internal/service"
	"github.com/DanekaBm/eventhub/internal/transport/middleware"
)

type TicketHandler struct {
	ticketService service.TicketService
}

func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

type BuyTicketsRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *TicketHandler) BuyTickets(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	var req BuyTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.ticketService.Purchase(c.Request.Context(), eventID, principal.UserID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	ticketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ticket id"})
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), ticketID, principal.UserID, principal.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) MyTickets(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	tickets, err := h.ticketService.MyTickets(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	if tickets == nil {
		tickets = []*entity.TicketWithEvent{}
	}
	c.JSON(http.StatusOK, tickets)
}

package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DanekaBm/eventhub/internal/entity"
	"github.com/DanekaBm/eventhub/internal/service"
	"github.com/DanekaBm/eventhub/internal/transport/middleware"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.eventService.CreateEvent(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *EventHandler) GetAllEvents(c *gin.Context) {
	filter, err := parseEventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if events == nil {
		events = []*entity.EventListItem{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	view, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.eventService.UpdateEvent(c.Request.Context(), id, principal.UserID, principal.Role, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), id, principal.UserID, principal.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (h *EventHandler) UploadEventImage(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
		return
	}

	url, err := h.eventService.SetEventImage(c.Request.Context(), id, principal.UserID, principal.Role, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func parseEventFilter(c *gin.Context) (*entity.EventFilter, error) {
	filter := &entity.EventFilter{Category: c.Query("category")}

	if v := c.Query("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		filter.PriceMin = &f
	}
	if v := c.Query("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		filter.PriceMax = &f
	}
	if v := c.Query("tickets_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		filter.TicketsMin = &n
	}
	if v := c.Query("tickets_max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		filter.TicketsMax = &n
	}

	return filter, nil
}

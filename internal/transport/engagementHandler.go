package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DanekaBm/eventhub/internal/service"
	"github.com/DanekaBm/eventhub/internal/transport/middleware"
)

type EngagementHandler struct {
	engagementService service.EngagementService
}

func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// CommentRequest carries a new comment's text; the author comes from the
// session, never from the body.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	principal, eventID, ok := h.principalAndEvent(c)
	if !ok {
		return
	}

	view, err := h.engagementService.ToggleLike(c.Request.Context(), eventID, principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *EngagementHandler) ToggleDislike(c *gin.Context) {
	principal, eventID, ok := h.principalAndEvent(c)
	if !ok {
		return
	}

	view, err := h.engagementService.ToggleDislike(c.Request.Context(), eventID, principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *EngagementHandler) AddComment(c *gin.Context) {
	principal, eventID, ok := h.principalAndEvent(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	view, err := h.engagementService.AddComment(c.Request.Context(), eventID, principal.UserID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *EngagementHandler) RemoveComment(c *gin.Context) {
	principal, eventID, ok := h.principalAndEvent(c)
	if !ok {
		return
	}

	commentID := c.Param("comment_id")
	if commentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
		return
	}

	view, err := h.engagementService.RemoveComment(c.Request.Context(), eventID, commentID, principal.UserID, principal.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *EngagementHandler) principalAndEvent(c *gin.Context) (*service.Principal, int64, bool) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return nil, 0, false
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return nil, 0, false
	}

	return principal, eventID, true
}

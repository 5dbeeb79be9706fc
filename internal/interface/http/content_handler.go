package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/application"
	"github.com/contentdesk/contentdesk-api/internal/interface/middleware"
	"github.com/contentdesk/contentdesk-api/pkg/validation"
)

type ContentHandler struct {
	Svc    *application.ContentService
	Logger *logrus.Logger
}

func NewContentHandler(svc *application.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{Svc: svc, Logger: logger}
}

const deadlineLayout = "2006-01-02"

type createContentRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status" binding:"omitempty,oneof=draft in_progress done"`
}

type updateContentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft in_progress done"`
}

func parseDeadline(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(deadlineLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func (h *ContentHandler) contentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		abortMessage(c, http.StatusNotFound, "Content not found or not yours")
	case errors.Is(err, application.ErrUpstream):
		internalError(c, err)
	default:
		internalError(c, err)
	}
}

// List GET /contents
func (h *ContentHandler) List(c *gin.Context) {
	contents, err := h.Svc.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}

// Get GET /contents/:id
func (h *ContentHandler) Get(c *gin.Context) {
	content, logs, err := h.Svc.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content, "ai_logs": logs})
}

// Create POST /contents
func (h *ContentHandler) Create(c *gin.Context) {
	var req createContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	content, logEntry, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), application.CreateContentInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    parseDeadline(req.Deadline),
		Status:      req.Status,
	})
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content created", "content": content, "ai_log": logEntry})
}

// Update PUT /contents/:id
func (h *ContentHandler) Update(c *gin.Context) {
	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	content, logEntry, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), application.UpdateContentInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    parseDeadline(req.Deadline),
		Status:      req.Status,
	})
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content updated", "content": content, "ai_log": logEntry})
}

// Delete DELETE /contents/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// Search GET /contents/search?q=...&size=...
func (h *ContentHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		abortMessage(c, http.StatusBadRequest, "missing query parameter q")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), middleware.ActorFrom(c), q, size)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, hits)
}

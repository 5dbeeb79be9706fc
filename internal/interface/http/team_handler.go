package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/application"
	"github.com/contentdesk/contentdesk-api/internal/interface/middleware"
	"github.com/contentdesk/contentdesk-api/pkg/validation"
)

type TeamHandler struct {
	Svc    *application.TeamService
	Logger *logrus.Logger
}

func NewTeamHandler(svc *application.TeamService, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{Svc: svc, Logger: logger}
}

type createTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateTeamRequest struct {
	Name *string `json:"name"`
}

func (h *TeamHandler) teamError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, application.ErrForbidden):
		abortMessage(c, http.StatusForbidden, forbiddenMsg)
	case errors.Is(err, application.ErrNotFound):
		abortMessage(c, http.StatusNotFound, "Team not found")
	default:
		internalError(c, err)
	}
}

// List GET /teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.Svc.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.teamError(c, err, "Only manager can view teams")
		return
	}
	c.JSON(http.StatusOK, teams)
}

// Get GET /teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.Svc.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		h.teamError(c, err, "Only manager can view teams")
		return
	}
	c.JSON(http.StatusOK, team)
}

// Create POST /teams
func (h *TeamHandler) Create(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}
	team, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), req.Name)
	if err != nil {
		h.teamError(c, err, "Only manager can create teams")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team created", "team": team})
}

// Update PUT /teams/:id
func (h *TeamHandler) Update(c *gin.Context) {
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}
	team, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Name)
	if err != nil {
		h.teamError(c, err, "Only manager can update teams")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team updated", "team": team})
}

// Delete DELETE /teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		h.teamError(c, err, "Only manager can delete teams")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

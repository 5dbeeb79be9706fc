package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/application"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/interface/middleware"
	"github.com/contentdesk/contentdesk-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,pwd"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	Role     string  `json:"role" binding:"omitempty"`
}

type updateUserRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	Role     *string `json:"role"`
}

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.PublicUsers(users))
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			abortMessage(c, http.StatusNotFound, "User not found")
		case errors.Is(err, application.ErrForbidden):
			abortMessage(c, http.StatusForbidden, "Forbidden: cannot view this user")
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), application.CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		TeamID:   req.TeamID,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrForbidden):
			abortMessage(c, http.StatusForbidden, "Only manager can create users")
		case errors.Is(err, application.ErrEmailTaken):
			abortMessage(c, http.StatusBadRequest, "Email already exists")
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User created", "user": u.Public()})
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), application.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		TeamID:   req.TeamID,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrForbidden):
			abortMessage(c, http.StatusForbidden, "Only manager can update users")
		case errors.Is(err, application.ErrUserNotFound):
			abortMessage(c, http.StatusNotFound, "User not found")
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": u.Public()})
}

// Delete DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrForbidden):
			abortMessage(c, http.StatusForbidden, "Only manager can delete users")
		case errors.Is(err, application.ErrUserNotFound):
			abortMessage(c, http.StatusNotFound, "User not found")
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

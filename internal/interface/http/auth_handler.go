package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/application"
	"github.com/contentdesk/contentdesk-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,pwd"`
	TeamID   *string `json:"team_id" binding:"omitempty,uuid"`
	Role     string  `json:"role" binding:"omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		TeamID:   req.TeamID,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			abortMessage(c, http.StatusBadRequest, "Email already exists")
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registered successfully", "user": u.Public()})
}

// Login POST /auth/login
// Unknown email is 404 and wrong password 400 — the historical status
// split is part of the wire contract and kept on purpose.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	u, token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			abortMessage(c, http.StatusNotFound, "User not found")
		case errors.Is(err, application.ErrInvalidCredentials):
			abortMessage(c, http.StatusBadRequest, "Wrong password")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": u.Public()})
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/contentdesk/contentdesk-api/internal/interface/http"
)

type AuthModule struct {
	handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{handler: h}
}

// Register mounts the public authentication endpoints.
func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.handler.Register)
	auth.POST("/login", m.handler.Login)
}

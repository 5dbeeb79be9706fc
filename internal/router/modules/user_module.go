package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/contentdesk/contentdesk-api/internal/interface/http"
	"github.com/contentdesk/contentdesk-api/internal/interface/middleware"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

type UserModule struct {
	handler *handlers.UserHandler
	jwt     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{handler: h, jwt: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth(m.jwt))
	users.GET("", m.handler.List)
	users.GET("/:id", m.handler.Get)
	users.POST("", m.handler.Create)
	users.PUT("/:id", m.handler.Update)
	users.DELETE("/:id", m.handler.Delete)
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/contentdesk/contentdesk-api/internal/interface/http"
	"github.com/contentdesk/contentdesk-api/internal/interface/middleware"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

type TeamModule struct {
	handler *handlers.TeamHandler
	jwt     *helpers.JWTManager
}

func NewTeamModule(h *handlers.TeamHandler, jwt *helpers.JWTManager) *TeamModule {
	return &TeamModule{handler: h, jwt: jwt}
}

func (m *TeamModule) Register(rg *gin.RouterGroup) {
	teams := rg.Group("/teams")
	teams.Use(middleware.Auth(m.jwt))
	teams.GET("", m.handler.List)
	teams.GET("/:id", m.handler.Get)
	teams.POST("", m.handler.Create)
	teams.PUT("/:id", m.handler.Update)
	teams.DELETE("/:id", m.handler.Delete)
}

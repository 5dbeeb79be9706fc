package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/contentdesk/contentdesk-api/internal/interface/http"
	"github.com/contentdesk/contentdesk-api/internal/interface/middleware"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

type ContentModule struct {
	handler *handlers.ContentHandler
	jwt     *helpers.JWTManager
}

func NewContentModule(h *handlers.ContentHandler, jwt *helpers.JWTManager) *ContentModule {
	return &ContentModule{handler: h, jwt: jwt}
}

func (m *ContentModule) Register(rg *gin.RouterGroup) {
	contents := rg.Group("/contents")
	contents.Use(middleware.Auth(m.jwt))
	contents.GET("", m.handler.List)
	contents.GET("/search", m.handler.Search)
	contents.GET("/:id", m.handler.Get)
	contents.POST("", m.handler.Create)
	contents.PUT("/:id", m.handler.Update)
	contents.DELETE("/:id", m.handler.Delete)
}

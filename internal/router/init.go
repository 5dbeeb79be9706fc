package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/config"
	"github.com/contentdesk/contentdesk-api/internal/application"
	pginfra "github.com/contentdesk/contentdesk-api/internal/infrastructure/postgres"
	handlers "github.com/contentdesk/contentdesk-api/internal/interface/http"
	"github.com/contentdesk/contentdesk-api/internal/router/modules"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

// Deps carries the shared infrastructure constructed in main. Passed
// explicitly so nothing hangs off process-wide state.
type Deps struct {
	Cfg        *config.Config
	Logger     *logrus.Logger
	Pool       *pgxpool.Pool
	Redis      *redis.Client
	JWT        *helpers.JWTManager
	ES         *elasticsearch.Client
	Summarizer application.Summarizer
}

// InitModules builds repositories, services, and handlers, and
// registers every feature module with the router registry.
func InitModules(r *Registry, d Deps) {
	userRepo := pginfra.NewUserRepository(d.Pool)
	teamRepo := pginfra.NewTeamRepository(d.Pool)
	contentRepo := pginfra.NewContentRepository(d.Pool)

	authSvc := application.NewAuthService(userRepo, d.JWT, d.Redis, d.Logger)
	userSvc := application.NewUserService(userRepo, d.Logger)
	teamSvc := application.NewTeamService(teamRepo, d.Logger)
	contentSvc := application.NewContentService(contentRepo, d.Summarizer, d.Logger, d.ES, d.Cfg.ESContentsIndex)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, d.Logger), d.JWT))
	r.Add(modules.NewTeamModule(handlers.NewTeamHandler(teamSvc, d.Logger), d.JWT))
	r.Add(modules.NewContentModule(handlers.NewContentHandler(contentSvc, d.Logger), d.JWT))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

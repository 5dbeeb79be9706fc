package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/authz"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
)

// TeamService is team CRUD behind the manager-only gate. Deleting a
// team nulls the team reference on its users (schema-level SET NULL);
// users themselves are untouched.
type TeamService struct {
	Repo   repository.TeamRepository
	Logger *logrus.Logger
}

func NewTeamService(repo repository.TeamRepository, logger *logrus.Logger) *TeamService {
	return &TeamService{Repo: repo, Logger: logger}
}

func (s *TeamService) List(ctx context.Context, actor authz.Actor) ([]entity.Team, error) {
	if !authz.CanManageTeams(actor) {
		return nil, ErrForbidden
	}
	return s.Repo.List(ctx)
}

func (s *TeamService) Get(ctx context.Context, actor authz.Actor, id string) (*entity.Team, error) {
	if !authz.CanManageTeams(actor) {
		return nil, ErrForbidden
	}
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TeamService) Create(ctx context.Context, actor authz.Actor, name string) (*entity.Team, error) {
	if !authz.CanManageTeams(actor) {
		return nil, ErrForbidden
	}
	t := &entity.Team{Name: name}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TeamService) Update(ctx context.Context, actor authz.Actor, id string, name *string) (*entity.Team, error) {
	if !authz.CanManageTeams(actor) {
		return nil, ErrForbidden
	}
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != nil {
		t.Name = *name
	}
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TeamService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if !authz.CanManageTeams(actor) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"team_id": id, "by": actor.UserID}).Info("team deleted")
	}
	return nil
}

package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/authz"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

// UserService is user administration behind the authorization policy.
type UserService struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Logger: logger}
}

// List returns the users visible to the actor: all of them for a
// manager, the actor's own team for a member, nothing for a member
// without a team.
func (s *UserService) List(ctx context.Context, actor authz.Actor) ([]entity.User, error) {
	scope := authz.ListUsersScope(actor)
	if scope.All {
		return s.Repo.List(ctx)
	}
	if scope.TeamID == nil {
		return []entity.User{}, nil
	}
	return s.Repo.ListByTeam(ctx, *scope.TeamID)
}

// Get returns a single user. Existence is reported before permission:
// an absent id is NotFound even for a member, a present but
// out-of-team user is Forbidden.
func (s *UserService) Get(ctx context.Context, actor authz.Actor, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !authz.CanViewUser(actor, u) {
		return nil, ErrForbidden
	}
	return u, nil
}

type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	TeamID   *string
	Role     string
}

func (s *UserService) Create(ctx context.Context, actor authz.Actor, in CreateUserInput) (*entity.User, error) {
	if !authz.CanAdministerUsers(actor) {
		return nil, ErrForbidden
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		TeamID:   in.TeamID,
		FullName: in.FullName,
		Email:    in.Email,
		Password: hash,
		Role:     authz.NormalizeRole(in.Role),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserInput carries patch fields; nil means "leave unchanged".
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Password *string
	TeamID   *string
	Role     *string
}

// Update applies a partial update. A supplied password is re-hashed; a
// role outside {manager, member} is silently ignored and the stored
// role kept.
func (s *UserService) Update(ctx context.Context, actor authz.Actor, id string, in UpdateUserInput) (*entity.User, error) {
	if !authz.CanAdministerUsers(actor) {
		return nil, ErrForbidden
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.TeamID != nil {
		u.TeamID = in.TeamID
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.Role != nil && authz.ValidRole(*in.Role) {
		u.Role = *in.Role
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if !authz.CanAdministerUsers(actor) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": id, "by": actor.UserID}).Info("user deleted")
	}
	return nil
}

package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/authz"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

// AuthService verifies credentials and mints session tokens.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	TeamID   *string
	Role     string
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Register creates a new user. The role is normalized: anything other
// than an explicit "manager" becomes "member".
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
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
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	}
	return u, nil
}

// Login checks the password and mints a session token carrying the
// actor identity. Unknown email and wrong password are distinct
// failures, matching the wire contract.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, ErrUserNotFound
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID, u.Email, u.Role, u.TeamID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, "", time.Time{}, err
	}

	s.recordSession(ctx, u, exp)
	return u, token, exp, nil
}

// recordSession keeps a login bookkeeping hash in Redis. Tokens are
// never revoked server-side, so verification does not consult this.
func (s *AuthService) recordSession(ctx context.Context, u *entity.User, exp time.Time) {
	if s.Redis == nil {
		return
	}
	fields := map[string]any{
		"user_id":   u.ID,
		"email":     u.Email,
		"role":      u.Role,
		"logged_in": true,
		"issued_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if u.TeamID != nil {
		fields["team_id"] = *u.TeamID
	}
	key := sessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.ExpireAt(ctx, key, exp)
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

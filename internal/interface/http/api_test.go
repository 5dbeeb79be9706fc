package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/contentdesk/contentdesk-api/internal/application"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
	handlers "github.com/contentdesk/contentdesk-api/internal/interface/http"
	"github.com/contentdesk/contentdesk-api/internal/router"
	"github.com/contentdesk/contentdesk-api/internal/router/modules"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
	"github.com/contentdesk/contentdesk-api/pkg/validation"
)

// memStore backs the whole API with in-memory maps so the routes can be
// exercised end to end without Postgres.
type memStore struct {
	users    map[string]*entity.User
	teams    map[string]*entity.Team
	contents map[string]*entity.Content
	logs     []entity.SummaryLog
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*entity.User{},
		teams:    map[string]*entity.Team{},
		contents: map[string]*entity.Content{},
	}
}

func (s *memStore) Create(_ context.Context, u *entity.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memStore) ListByTeam(_ context.Context, teamID string) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range s.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, u *entity.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// teamStore adapts memStore to the team repository.
type teamStore struct{ s *memStore }

func (t teamStore) Create(_ context.Context, tm *entity.Team) error {
	tm.ID = uuid.NewString()
	tm.CreatedAt = time.Now()
	tm.UpdatedAt = tm.CreatedAt
	cp := *tm
	t.s.teams[tm.ID] = &cp
	return nil
}

func (t teamStore) GetByID(_ context.Context, id string) (*entity.Team, error) {
	tm, ok := t.s.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *tm
	return &cp, nil
}

func (t teamStore) List(_ context.Context) ([]entity.Team, error) {
	out := make([]entity.Team, 0, len(t.s.teams))
	for _, tm := range t.s.teams {
		out = append(out, *tm)
	}
	return out, nil
}

func (t teamStore) Update(_ context.Context, tm *entity.Team) error {
	if _, ok := t.s.teams[tm.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *tm
	t.s.teams[tm.ID] = &cp
	return nil
}

func (t teamStore) Delete(_ context.Context, id string) error {
	if _, ok := t.s.teams[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.s.teams, id)
	return nil
}

// contentStore adapts memStore to the content repository, honoring the
// owner scope filter the way the SQL implementation does.
type contentStore struct{ s *memStore }

func (cs contentStore) Create(_ context.Context, c *entity.Content) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	cs.s.contents[c.ID] = &cp
	return nil
}

func (cs contentStore) GetByID(_ context.Context, id string, ownerID *string) (*entity.Content, error) {
	c, ok := cs.s.contents[id]
	if !ok || (ownerID != nil && c.UserID != *ownerID) {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (cs contentStore) List(_ context.Context, ownerID *string) ([]entity.Content, error) {
	out := []entity.Content{}
	for _, c := range cs.s.contents {
		if ownerID == nil || c.UserID == *ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (cs contentStore) Update(_ context.Context, c *entity.Content) error {
	if _, ok := cs.s.contents[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	cs.s.contents[c.ID] = &cp
	return nil
}

func (cs contentStore) Delete(_ context.Context, id string, ownerID *string) error {
	c, ok := cs.s.contents[id]
	if !ok || (ownerID != nil && c.UserID != *ownerID) {
		return repository.ErrNotFound
	}
	delete(cs.s.contents, id)
	return nil
}

func (cs contentStore) AppendLog(_ context.Context, l *entity.SummaryLog) error {
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	cs.s.logs = append(cs.s.logs, *l)
	return nil
}

func (cs contentStore) ListLogs(_ context.Context, contentID string) ([]entity.SummaryLog, error) {
	out := []entity.SummaryLog{}
	for _, l := range cs.s.logs {
		if l.ContentID == contentID {
			out = append(out, l)
		}
	}
	return out, nil
}

// countingSummarizer hands out numbered summaries so tests can assert
// log ordering.
type countingSummarizer struct {
	mu sync.Mutex
	n  int
}

func (c *countingSummarizer) Summarize(context.Context, string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("summary #%d", c.n), nil
}

var initOnce sync.Once

func newTestAPI(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	initOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})

	store := newMemStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	authSvc := application.NewAuthService(store, jwt, nil, logger)
	userSvc := application.NewUserService(store, logger)
	teamSvc := application.NewTeamService(teamStore{store}, logger)
	contentSvc := application.NewContentService(contentStore{store}, &countingSummarizer{}, logger, nil, "")

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	reg.Add(modules.NewTeamModule(handlers.NewTeamHandler(teamSvc, logger), jwt))
	reg.Add(modules.NewContentModule(handlers.NewContentHandler(contentSvc, logger), jwt))
	reg.RegisterAll()
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var out map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func doJSONList(t *testing.T, engine *gin.Engine, path, token string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var out []map[string]any
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func register(t *testing.T, engine *gin.Engine, fullName, email, role string, teamID *string) string {
	t.Helper()
	body := map[string]any{
		"full_name": fullName,
		"email":     email,
		"password":  "password123",
		"role":      role,
	}
	if teamID != nil {
		body["team_id"] = *teamID
	}
	code, resp := doJSON(t, engine, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusOK, code, "register %s: %v", email, resp)
	return resp["user"].(map[string]any)["id"].(string)
}

func login(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	code, resp := doJSON(t, engine, http.MethodPost, "/auth/login", "", map[string]any{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, code, "login %s: %v", email, resp)
	return resp["token"].(string)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	engine, _ := newTestAPI(t)

	code, resp := doJSON(t, engine, http.MethodPost, "/auth/register", "", map[string]any{
		"full_name": "Maya Tanaka", "email": "maya@example.com", "password": "password123", "role": "manager",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Registered successfully", resp["message"])
	user := resp["user"].(map[string]any)
	require.Equal(t, "manager", user["role"])
	_, hasPassword := user["password"]
	require.False(t, hasPassword, "password must never be serialized")

	code, resp = doJSON(t, engine, http.MethodPost, "/auth/register", "", map[string]any{
		"full_name": "Maya Again", "email": "maya@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Email already exists", resp["message"])

	code, resp = doJSON(t, engine, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "nobody@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "User not found", resp["message"])

	code, resp = doJSON(t, engine, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "maya@example.com", "password": "wrongpass99",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Wrong password", resp["message"])

	code, resp = doJSON(t, engine, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "maya@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Login successful", resp["message"])
	require.NotEmpty(t, resp["token"])
}

func TestRegisterValidation(t *testing.T) {
	engine, _ := newTestAPI(t)

	code, resp := doJSON(t, engine, http.MethodPost, "/auth/register", "", map[string]any{
		"full_name": "Short Pass", "email": "short@example.com", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid payload", resp["message"])
	details := resp["details"].(map[string]any)
	require.Contains(t, details, "password")
}

func TestTeamEndpointsAreManagerOnly(t *testing.T) {
	engine, _ := newTestAPI(t)

	register(t, engine, "Jon Rivera", "jon@example.com", "member", nil)
	register(t, engine, "Maya Tanaka", "maya@example.com", "manager", nil)
	memberTok := login(t, engine, "jon@example.com")
	managerTok := login(t, engine, "maya@example.com")

	code, _ := doJSONList(t, engine, "/teams", memberTok)
	require.Equal(t, http.StatusForbidden, code)

	code, resp := doJSON(t, engine, http.MethodPost, "/teams", memberTok, map[string]any{"name": "Rogue"})
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "Only manager can create teams", resp["message"])

	code, resp = doJSON(t, engine, http.MethodPost, "/teams", managerTok, map[string]any{"name": "Editorial"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Team created", resp["message"])
	teamID := resp["team"].(map[string]any)["id"].(string)

	code, resp = doJSON(t, engine, http.MethodDelete, "/teams/"+teamID, managerTok, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Team deleted", resp["message"])

	code, resp = doJSON(t, engine, http.MethodGet, "/teams/"+teamID, managerTok, nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Team not found", resp["message"])
}

func TestUserVisibilityScoping(t *testing.T) {
	engine, _ := newTestAPI(t)
	teamA := uuid.NewString()
	teamB := uuid.NewString()

	register(t, engine, "Maya Tanaka", "maya@example.com", "manager", nil)
	register(t, engine, "Jon Rivera", "jon@example.com", "member", &teamA)
	register(t, engine, "Ana Solis", "ana@example.com", "member", &teamA)
	otherID := register(t, engine, "Kim Osei", "kim@example.com", "member", &teamB)

	managerTok := login(t, engine, "maya@example.com")
	memberTok := login(t, engine, "jon@example.com")

	code, all := doJSONList(t, engine, "/users", managerTok)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, all, 4)

	code, teamMates := doJSONList(t, engine, "/users", memberTok)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, teamMates, 2)
	for _, u := range teamMates {
		require.Equal(t, teamA, u["team_id"])
	}

	code, resp := doJSON(t, engine, http.MethodGet, "/users/"+otherID, memberTok, nil)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "Forbidden: cannot view this user", resp["message"])

	code, resp = doJSON(t, engine, http.MethodGet, "/users/"+uuid.NewString(), memberTok, nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "User not found", resp["message"])

	code, resp = doJSON(t, engine, http.MethodPost, "/users", memberTok, map[string]any{
		"full_name": "Sneaky Add", "email": "sneak@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "Only manager can create users", resp["message"])
}

func TestContentLifecycleWithSummaryLog(t *testing.T) {
	engine, _ := newTestAPI(t)

	register(t, engine, "Jon Rivera", "jon@example.com", "member", nil)
	register(t, engine, "Ana Solis", "ana@example.com", "member", nil)
	jonTok := login(t, engine, "jon@example.com")
	anaTok := login(t, engine, "ana@example.com")

	code, resp := doJSON(t, engine, http.MethodPost, "/contents", jonTok, map[string]any{
		"title": "Launch plan", "description": "Ship the thing", "deadline": "2026-10-01",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Content created", resp["message"])
	content := resp["content"].(map[string]any)
	require.Equal(t, "draft", content["status"])
	contentID := content["id"].(string)
	require.Equal(t, "summary #1", resp["ai_log"].(map[string]any)["response"])

	code, resp = doJSON(t, engine, http.MethodPut, "/contents/"+contentID, jonTok, map[string]any{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "summary #2", resp["ai_log"].(map[string]any)["response"])

	code, resp = doJSON(t, engine, http.MethodGet, "/contents/"+contentID, jonTok, nil)
	require.Equal(t, http.StatusOK, code)
	logs := resp["ai_logs"].([]any)
	require.Len(t, logs, 2)
	require.Equal(t, "summary #1", logs[0].(map[string]any)["response"])
	require.Equal(t, "summary #2", logs[1].(map[string]any)["response"])

	// another member never learns the row exists
	code, resp = doJSON(t, engine, http.MethodGet, "/contents/"+contentID, anaTok, nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Content not found or not yours", resp["message"])

	code, _ = doJSON(t, engine, http.MethodDelete, "/contents/"+contentID, anaTok, nil)
	require.Equal(t, http.StatusNotFound, code)

	code, resp = doJSON(t, engine, http.MethodDelete, "/contents/"+contentID, jonTok, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Content deleted", resp["message"])
}

func TestContentValidation(t *testing.T) {
	engine, _ := newTestAPI(t)
	register(t, engine, "Jon Rivera", "jon@example.com", "member", nil)
	tok := login(t, engine, "jon@example.com")

	code, resp := doJSON(t, engine, http.MethodPost, "/contents", tok, map[string]any{
		"title": "Bad status", "status": "archived",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid payload", resp["message"])

	code, resp = doJSON(t, engine, http.MethodPost, "/contents", tok, map[string]any{
		"title": "Bad deadline", "deadline": "01-10-2026",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid payload", resp["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine, _ := newTestAPI(t)

	for _, path := range []string{"/contents", "/teams", "/users"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

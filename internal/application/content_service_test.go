package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/contentdesk/contentdesk-api/internal/authz"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
)

type fakeContentRepo struct {
	contents map[string]*entity.Content
	logs     []entity.SummaryLog
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: map[string]*entity.Content{}}
}

func (f *fakeContentRepo) Create(_ context.Context, c *entity.Content) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.contents[c.ID] = &cp
	return nil
}

func (f *fakeContentRepo) GetByID(_ context.Context, id string, ownerID *string) (*entity.Content, error) {
	c, ok := f.contents[id]
	if !ok || (ownerID != nil && c.UserID != *ownerID) {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContentRepo) List(_ context.Context, ownerID *string) ([]entity.Content, error) {
	out := []entity.Content{}
	for _, c := range f.contents {
		if ownerID == nil || c.UserID == *ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) Update(_ context.Context, c *entity.Content) error {
	if _, ok := f.contents[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	f.contents[c.ID] = &cp
	return nil
}

func (f *fakeContentRepo) Delete(_ context.Context, id string, ownerID *string) error {
	c, ok := f.contents[id]
	if !ok || (ownerID != nil && c.UserID != *ownerID) {
		return repository.ErrNotFound
	}
	delete(f.contents, id)
	return nil
}

func (f *fakeContentRepo) AppendLog(_ context.Context, l *entity.SummaryLog) error {
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeContentRepo) ListLogs(_ context.Context, contentID string) ([]entity.SummaryLog, error) {
	out := []entity.SummaryLog{}
	for _, l := range f.logs {
		if l.ContentID == contentID {
			out = append(out, l)
		}
	}
	return out, nil
}

type summarizeFunc func(ctx context.Context, prompt string) (string, error)

func (f summarizeFunc) Summarize(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func fixedSummary(text string) summarizeFunc {
	return func(context.Context, string) (string, error) { return text, nil }
}

func memberActor() authz.Actor {
	return authz.Actor{UserID: uuid.NewString(), Role: entity.RoleMember}
}

func TestContentCreateAppendsLog(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo, fixedSummary("a short summary"), nil, nil, "")
	actor := memberActor()

	c, logEntry, err := svc.Create(context.Background(), actor, CreateContentInput{
		Title:       "Launch plan",
		Description: "Ship the thing",
	})
	require.NoError(t, err)
	require.Equal(t, entity.StatusDraft, c.Status)
	require.Equal(t, actor.UserID, c.UserID)

	require.NotNil(t, logEntry)
	require.Equal(t, c.ID, logEntry.ContentID)
	require.Equal(t, actor.UserID, logEntry.UserID)
	require.Equal(t, entity.LogTypeSummary, logEntry.Type)
	require.Equal(t, "a short summary", logEntry.Response)
	require.Len(t, repo.logs, 1)
}

func TestContentUpdateAccumulatesLogs(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo, fixedSummary("v1"), nil, nil, "")
	actor := memberActor()

	c, _, err := svc.Create(context.Background(), actor, CreateContentInput{Title: "Draft"})
	require.NoError(t, err)

	svc.Summarizer = fixedSummary("v2")
	title := "Draft, revised"
	updated, logEntry, err := svc.Update(context.Background(), actor, c.ID, UpdateContentInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Draft, revised", updated.Title)
	require.Equal(t, "v2", logEntry.Response)

	logs, err := repo.ListLogs(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, "v1", logs[0].Response)
	require.Equal(t, "v2", logs[1].Response)
}

func TestContentScopeHidesForeignRows(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo, fixedSummary("s"), nil, nil, "")
	owner := memberActor()
	intruder := memberActor()
	manager := authz.Actor{UserID: uuid.NewString(), Role: entity.RoleManager}

	c, _, err := svc.Create(context.Background(), owner, CreateContentInput{Title: "Mine"})
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), intruder, c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	title := "Touched"
	_, _, err = svc.Update(context.Background(), intruder, c.ID, UpdateContentInput{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), intruder, c.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// a manager sees and edits everything
	got, _, err := svc.Get(context.Background(), manager, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)

	listed, err := svc.List(context.Background(), intruder)
	require.NoError(t, err)
	require.Empty(t, listed)

	listed, err = svc.List(context.Background(), manager)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestContentCreateUpstreamFailureKeepsRow(t *testing.T) {
	repo := newFakeContentRepo()
	boom := summarizeFunc(func(context.Context, string) (string, error) {
		return "", errors.New("upstream 502")
	})
	svc := NewContentService(repo, boom, nil, nil, "")
	actor := memberActor()

	_, _, err := svc.Create(context.Background(), actor, CreateContentInput{Title: "Doomed"})
	require.ErrorIs(t, err, ErrUpstream)

	// the row survives the failed summarization, without a log entry
	require.Len(t, repo.contents, 1)
	require.Empty(t, repo.logs)
}

func TestContentDeleteRemovesRow(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo, fixedSummary("s"), nil, nil, "")
	actor := memberActor()

	c, _, err := svc.Create(context.Background(), actor, CreateContentInput{Title: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), actor, c.ID))
	_, _, err = svc.Get(context.Background(), actor, c.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

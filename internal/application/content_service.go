package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/contentdesk/contentdesk-api/internal/authz"
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
	"github.com/contentdesk/contentdesk-api/internal/summarizer"
)

// Summarizer is the external AI capability consumed on content
// create/update.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// ContentService orchestrates content CRUD, the synchronous
// summarization call with its append-only log, and the search index.
type ContentService struct {
	Repo       repository.ContentRepository
	Summarizer Summarizer
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESIndex    string
}

func NewContentService(repo repository.ContentRepository, sum Summarizer, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ContentService {
	return &ContentService{Repo: repo, Summarizer: sum, Logger: logger, ES: es, ESIndex: esIndex}
}

type CreateContentInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	Status      string
}

// Create persists the content row, then calls the summarizer and
// appends one log entry attributed to the actor. If the summarization
// call fails the row stays persisted and the operation fails with
// ErrUpstream; the item simply has no log entry until the next
// successful update.
func (s *ContentService) Create(ctx context.Context, actor authz.Actor, in CreateContentInput) (*entity.Content, *entity.SummaryLog, error) {
	c := &entity.Content{
		UserID:      actor.UserID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Status:      in.Status,
	}
	if c.Status == "" {
		c.Status = entity.StatusDraft
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, nil, err
	}
	s.indexContent(ctx, c)

	logEntry, err := s.generateSummary(ctx, actor, c)
	if err != nil {
		return nil, nil, err
	}
	return c, logEntry, nil
}

// UpdateContentInput carries patch fields; nil means "leave unchanged".
type UpdateContentInput struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Status      *string
}

func (s *ContentService) Update(ctx context.Context, actor authz.Actor, id string, in UpdateContentInput) (*entity.Content, *entity.SummaryLog, error) {
	c, err := s.Repo.GetByID(ctx, id, authz.ContentScope(actor))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Deadline != nil {
		c.Deadline = in.Deadline
	}
	if in.Status != nil {
		c.Status = *in.Status
	}

	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, nil, err
	}
	s.indexContent(ctx, c)

	logEntry, err := s.generateSummary(ctx, actor, c)
	if err != nil {
		return nil, nil, err
	}
	return c, logEntry, nil
}

func (s *ContentService) Get(ctx context.Context, actor authz.Actor, id string) (*entity.Content, []entity.SummaryLog, error) {
	c, err := s.Repo.GetByID(ctx, id, authz.ContentScope(actor))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	logs, err := s.Repo.ListLogs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, logs, nil
}

func (s *ContentService) List(ctx context.Context, actor authz.Actor) ([]entity.Content, error) {
	return s.Repo.List(ctx, authz.ContentScope(actor))
}

func (s *ContentService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := s.Repo.Delete(ctx, id, authz.ContentScope(actor)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deindexContent(ctx, id)
	return nil
}

// generateSummary calls the upstream synchronously and appends the
// append-only log row. The caller's content row is already persisted.
func (s *ContentService) generateSummary(ctx context.Context, actor authz.Actor, c *entity.Content) (*entity.SummaryLog, error) {
	prompt := summarizer.BuildPrompt(c.Title, c.Description)
	text, err := s.Summarizer.Summarize(ctx, prompt)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("content_id", c.ID).Error("summarization failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	logEntry := &entity.SummaryLog{
		ContentID: c.ID,
		UserID:    actor.UserID,
		Type:      entity.LogTypeSummary,
		Response:  text,
	}
	if err := s.Repo.AppendLog(ctx, logEntry); err != nil {
		return nil, err
	}
	return logEntry, nil
}

// indexContent mirrors the row into Elasticsearch for Search. Indexing
// is best-effort: failures are logged, never surfaced to the client.
func (s *ContentService) indexContent(ctx context.Context, c *entity.Content) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          c.ID,
		"user_id":     c.UserID,
		"title":       c.Title,
		"description": c.Description,
		"status":      c.Status,
		"updated_at":  c.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("content_id", c.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("content_id", c.ID).Warn("es index response error")
	}
}

func (s *ContentService) deindexContent(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("content_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over title and description, filtered
// by the same ownership scope as List. Without a configured cluster it
// returns an empty result.
func (s *ContentService) Search(ctx context.Context, actor authz.Actor, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}

	must := []map[string]any{
		{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
		"size": size,
	}
	if owner := authz.ContentScope(actor); owner != nil {
		query["query"].(map[string]any)["bool"].(map[string]any)["filter"] = []map[string]any{
			{"term": map[string]any{"user_id": *owner}},
		}
	}
	b, _ := json.Marshal(query)

	cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(cctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

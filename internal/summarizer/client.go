// Package summarizer talks to the external AI summarization service.
// The call is synchronous: content create/update block on it, and a slow
// or failing upstream directly slows or fails the client request.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type summaryRequest struct {
	Prompt string `json:"prompt"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}

// Summarize sends the prompt and returns the generated summary text.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	b, _ := json.Marshal(summaryRequest{Prompt: prompt})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/summaries", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("summarizer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarizer call: %w", err)
	}
	defer resp.Body.Close()

	var out summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("summarizer decode: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("summarizer error (status %d): %s", resp.StatusCode, out.Error)
	}
	return out.Summary, nil
}

// BuildPrompt assembles the summarization prompt from a content item's
// title and description.
func BuildPrompt(title, description string) string {
	return "Summarize the following content item.\n\nTitle: " + title + "\n\nDescription: " + description
}

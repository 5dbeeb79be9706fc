package entity

import "time"

// Content statuses. Transitions are deliberately unconstrained: any
// status may be set directly via update.
const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Content is a work item owned by exactly one user.
type Content struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SummaryLog is an append-only record of one summarization call for a
// content item. UserID is the actor who triggered the generation, not
// necessarily the content owner.
type SummaryLog struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// LogTypeSummary is the only log type written today.
const LogTypeSummary = "summary"

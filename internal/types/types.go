// Package types provides domain models shared across Light Feedback components.
//
// Zero-dependency design: models and errors use only the standard library so
// the package can be imported from every layer (config, store, API) without
// dragging database or transport dependencies along.
package types

import "time"

// FeedbackType classifies a feedback item as a bug report or feature request.
// String alias enables type safety while maintaining JSON string serialization.
type FeedbackType string

const (
	TypeBug     FeedbackType = "bug"
	TypeFeature FeedbackType = "feature"
)

// Valid reports whether t is a member of the fixed type enumeration.
func (t FeedbackType) Valid() bool {
	switch t {
	case TypeBug, TypeFeature:
		return true
	}
	return false
}

// Status tracks the workflow state of a feedback item.
// Any status may transition to any other; no workflow is enforced.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// DefaultStatus is assigned to every newly created feedback item.
const DefaultStatus = StatusPending

// Valid reports whether s is a member of the fixed status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Severity is the optional impact classification of a feedback item.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether v is a member of the fixed severity enumeration.
func (v Severity) Valid() bool {
	switch v {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Project is a developer-defined project feedback can be filed against.
// The population is fixed at deploy time and seeded idempotently on startup;
// projects are never created or deleted through the API.
type Project struct {
	Key    string `db:"key" json:"key"`
	Name   string `db:"name" json:"name"`
	Active bool   `db:"active" json:"active"`
}

// Feedback is a single bug or feature report.
// Timestamps are second-precision ISO-8601 UTC strings with a trailing 'Z',
// stored as TEXT on both backends so responses are byte-identical.
type Feedback struct {
	ID          int64        `db:"id" json:"id"`
	ProjectKey  string       `db:"project_key" json:"project_key"`
	Type        FeedbackType `db:"type" json:"type"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Severity    *Severity    `db:"severity" json:"severity"`
	Status      Status       `db:"status" json:"status"`
	CreatedBy   string       `db:"created_by" json:"created_by"`
	Assignee    *string      `db:"assignee" json:"assignee"`
	Resolution  *string      `db:"resolution" json:"resolution"`
	CreatedAt   string       `db:"created_at" json:"created_at"`
	UpdatedAt   string       `db:"updated_at" json:"updated_at"`
}

// Comment is an immutable note attached to a feedback item.
type Comment struct {
	ID         int64  `db:"id" json:"id"`
	FeedbackID int64  `db:"feedback_id" json:"feedback_id"`
	Body       string `db:"body" json:"body"`
	CreatedBy  string `db:"created_by" json:"created_by"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}

// NowISO returns the current UTC time formatted the way every timestamp in the
// system is stored: second precision, trailing 'Z'. The format sorts
// lexicographically, which the created_at orderings rely on.
func NowISO() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}

// Package feedback provides the SQL-backed store for projects, feedback
// items, and comments. Every mutation runs inside a transaction scope so a
// failed statement never leaves a partial write behind.
package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nfrf/lightfeedback/internal/core/config"
	"github.com/nfrf/lightfeedback/internal/core/db"
	"github.com/nfrf/lightfeedback/internal/types"
)

// lastInsertID is the embedded backend's idiom; db.Scalar rewrites it to
// lastval() on postgres. Must run on the insert's connection, which the
// surrounding transaction guarantees.
const lastInsertID = "SELECT last_insert_rowid()"

// Store executes feedback operations against the selected backend.
type Store struct {
	db      *sqlx.DB
	queries *db.Queries
}

// NewStore creates a store instance with dependencies.
func NewStore(database *sqlx.DB, queries *db.Queries) (*Store, error) {
	if database == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if queries == nil {
		return nil, fmt.Errorf("queries cannot be nil")
	}
	return &Store{db: database, queries: queries}, nil
}

// ListProjects returns active projects ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]types.Project, error) {
	projects := []types.Project{}
	if err := s.queries.Select(ctx, s.db, "list-projects", &projects, true); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateInput carries a validated feedback submission.
type CreateInput struct {
	ProjectKey  string
	Type        types.FeedbackType
	Title       string
	Description string
	Severity    *types.Severity
	CreatedBy   string
	Assignee    *string
}

// CreateFeedback inserts a feedback item with the default status and both
// timestamps stamped identically, then returns the stored row including its
// backend-assigned id.
func (s *Store) CreateFeedback(ctx context.Context, in CreateInput) (*types.Feedback, error) {
	now := types.NowISO()

	var fb types.Feedback
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := s.queries.Exec(ctx, tx, "insert-feedback",
			in.ProjectKey, in.Type, in.Title, in.Description, in.Severity,
			types.DefaultStatus, in.CreatedBy, in.Assignee, now, now)
		if err != nil {
			return fmt.Errorf("insert feedback: %w", err)
		}

		id, ok, err := db.Scalar(ctx, tx, lastInsertID)
		if err != nil || !ok {
			return fmt.Errorf("fetch inserted id: %w", err)
		}

		return s.queries.Get(ctx, tx, "get-feedback", &fb, id)
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// Filter describes the feedback listing request. Zero values mean "no
// filter"; Page and PageSize are assumed normalized by the caller but are
// guarded here as well.
type Filter struct {
	ProjectKey string
	Status     string
	Type       string
	Search     string
	Page       int
	PageSize   int
	Ascending  bool
}

// ListFeedback returns the filtered page plus the total matching count.
// The total is computed independently of the page window. Substring search
// matches title OR description; case sensitivity is backend-dependent.
func (s *Store) ListFeedback(ctx context.Context, f Filter) ([]types.Feedback, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = config.PageSizeDefault
	}
	if f.PageSize > config.PageSizeMax {
		f.PageSize = config.PageSizeMax
	}

	var clauses []string
	var args []any
	if f.ProjectKey != "" {
		clauses = append(clauses, "project_key = ?")
		args = append(args, f.ProjectKey)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, f.Type)
	}
	if f.Search != "" {
		clauses = append(clauses, "(title LIKE ? OR description LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	total, _, err := db.Scalar(ctx, s.db, "SELECT COUNT(*) FROM feedback"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	// id tiebreak keeps pagination deterministic when timestamps collide at
	// second precision.
	order := "created_at DESC, id DESC"
	if f.Ascending {
		order = "created_at ASC, id ASC"
	}

	query := "SELECT id, project_key, type, title, description, severity, status, created_by, assignee, resolution, created_at, updated_at" +
		" FROM feedback" + where + " ORDER BY " + order + " LIMIT ? OFFSET ?"
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	items := []types.Feedback{}
	if err := sqlx.SelectContext(ctx, s.db, &items, s.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}

	return items, total, nil
}

// GetFeedback fetches one feedback item by id.
// Returns types.ErrNotFound if absent.
func (s *Store) GetFeedback(ctx context.Context, id int64) (*types.Feedback, error) {
	var fb types.Feedback
	err := s.queries.Get(ctx, s.db, "get-feedback", &fb, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback %d: %w", id, err)
	}
	return &fb, nil
}

// UpdateInput carries a partial feedback update; nil fields are untouched.
type UpdateInput struct {
	Status      *types.Status
	Assignee    *string
	Resolution  *string
	Title       *string
	Description *string
	Severity    *types.Severity
}

// Empty reports whether no updatable field was supplied.
func (in UpdateInput) Empty() bool {
	return in.Status == nil && in.Assignee == nil && in.Resolution == nil &&
		in.Title == nil && in.Description == nil && in.Severity == nil
}

// UpdateFeedback applies a partial update: only supplied fields change and
// updated_at is always rewritten on success. Returns types.ErrEmptyUpdate for
// an empty field set and types.ErrNotFound for a missing id.
func (s *Store) UpdateFeedback(ctx context.Context, id int64, in UpdateInput) (*types.Feedback, error) {
	if in.Empty() {
		return nil, types.ErrEmptyUpdate
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if in.Status != nil {
		set("status", *in.Status)
	}
	if in.Assignee != nil {
		set("assignee", *in.Assignee)
	}
	if in.Resolution != nil {
		set("resolution", *in.Resolution)
	}
	if in.Title != nil {
		set("title", *in.Title)
	}
	if in.Description != nil {
		set("description", *in.Description)
	}
	if in.Severity != nil {
		set("severity", *in.Severity)
	}

	args = append(args, types.NowISO(), id)
	query := "UPDATE feedback SET " + strings.Join(sets, ", ") + ", updated_at = ? WHERE id = ?"

	var fb types.Feedback
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("update feedback %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update feedback %d: %w", id, err)
		}
		if affected == 0 {
			return types.ErrNotFound
		}
		return s.queries.Get(ctx, tx, "get-feedback", &fb, id)
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// AddComment appends a comment to an existing feedback item. The parent
// existence check and the insert share one transaction, so a comment is never
// committed without its parent. Returns types.ErrNotFound for a missing
// parent.
func (s *Store) AddComment(ctx context.Context, feedbackID int64, body, createdBy string) (*types.Comment, error) {
	now := types.NowISO()

	var c types.Comment
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, ok, err := db.Scalar(ctx, tx, "SELECT 1 FROM feedback WHERE id = ?", feedbackID)
		if err != nil {
			return fmt.Errorf("check feedback %d: %w", feedbackID, err)
		}
		if !ok {
			return types.ErrNotFound
		}

		if _, err := s.queries.Exec(ctx, tx, "insert-comment", feedbackID, body, createdBy, now); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		id, ok, err := db.Scalar(ctx, tx, lastInsertID)
		if err != nil || !ok {
			return fmt.Errorf("fetch inserted id: %w", err)
		}

		return s.queries.Get(ctx, tx, "get-comment", &c, id)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComments returns a feedback item's comments in non-decreasing
// creation-time order. A missing parent yields an empty list, matching the
// read-only listing contract.
func (s *Store) ListComments(ctx context.Context, feedbackID int64) ([]types.Comment, error) {
	comments := []types.Comment{}
	if err := s.queries.Select(ctx, s.db, "list-comments", &comments, feedbackID); err != nil {
		return nil, fmt.Errorf("list comments for %d: %w", feedbackID, err)
	}
	return comments, nil
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
)

// TaskFilter narrows the task set returned by TaskStore.List.
// The zero value matches every task.
//
// OwnerID is the access-policy scope: it must be populated from
// policy.Scope for every caller-facing list operation so that the
// role pre-filter is applied inside the query, never after it.
type TaskFilter struct {
	// OwnerID restricts results to tasks owned by the given user.
	// Nil means no owner restriction (admin scope).
	OwnerID *int64

	// Quadrant restricts results to a single Eisenhower quadrant.
	Quadrant *matrix.Quadrant

	// Completed restricts results by completion status.
	Completed *bool

	// Search matches case-insensitively against title or description.
	Search string

	// DueOn restricts results to tasks whose deadline falls on the given
	// calendar date. Tasks without a deadline never match.
	DueOn *time.Time
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and populates its ID from the
	// storage-assigned value.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves all tasks matching the filter, ordered by ID ascending
	// (insertion order). An empty result is not an error.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update persists the full current state of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}

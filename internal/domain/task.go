package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
)

// Task field length limits, mirrored by the API request validation.
const (
	TaskTitleMinLen       = 3
	TaskTitleMaxLen       = 100
	TaskDescriptionMaxLen = 500
)

// Task-specific validation errors.
var (
	ErrTaskUserIDEmpty        = errors.New("task user ID cannot be empty")
	ErrTaskTitleTooShort      = errors.New("task title must be at least 3 characters long")
	ErrTaskTitleTooLong       = errors.New("task title must be at most 100 characters long")
	ErrTaskDescriptionTooLong = errors.New("task description must be at most 500 characters long")
	ErrTaskQuadrantInvalid    = errors.New("task quadrant must be one of Q1, Q2, Q3, Q4")
)

// Task represents a single task classified into an Eisenhower quadrant.
//
// Quadrant is a write-time derived field: it is recomputed (and persisted)
// only when IsImportant or DeadlineAt changes, so it can go stale as wall
// clock time crosses the urgency threshold. Urgency and days-until-deadline
// are read-time derived and exposed via the IsUrgent and DaysUntilDeadline
// accessors instead of being stored.
type Task struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	IsImportant bool            `json:"is_important"`
	DeadlineAt  *time.Time      `json:"deadline_at,omitempty"`
	Quadrant    matrix.Quadrant `json:"quadrant"`
	Completed   bool            `json:"completed"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTask creates a new pending Task owned by the given user and classifies
// it into its quadrant using the supplied reference time. The ID is assigned
// by storage on creation.
func NewTask(userID int64, title, description string, isImportant bool, deadline *time.Time, now time.Time) (*Task, error) {
	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		IsImportant: isImportant,
		DeadlineAt:  deadline,
		Completed:   false,
		CreatedAt:   now.UTC(),
	}
	task.Reclassify(now)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrTaskUserIDEmpty
	}

	titleLen := utf8.RuneCountInString(t.Title)
	if titleLen < TaskTitleMinLen {
		return ErrTaskTitleTooShort
	}
	if titleLen > TaskTitleMaxLen {
		return ErrTaskTitleTooLong
	}

	if utf8.RuneCountInString(t.Description) > TaskDescriptionMaxLen {
		return ErrTaskDescriptionTooLong
	}

	if !matrix.IsValidQuadrant(t.Quadrant) {
		return ErrTaskQuadrantInvalid
	}

	return nil
}

// Reclassify recomputes the persisted quadrant from the current importance
// and deadline. Call this whenever either of those fields is written; reads
// never trigger it.
func (t *Task) Reclassify(now time.Time) {
	t.Quadrant = matrix.Classify(t.IsImportant, matrix.IsUrgent(t.DeadlineAt, now))
}

// IsUrgent reports the live urgency of the task at the given time.
// Unlike Quadrant this is evaluated on every read.
func (t *Task) IsUrgent(now time.Time) bool {
	return matrix.IsUrgent(t.DeadlineAt, now)
}

// DaysUntilDeadline returns the signed number of calendar days from now to
// the deadline, or ok=false when the task has no deadline. Negative values
// mean the task is overdue.
func (t *Task) DaysUntilDeadline(now time.Time) (days int, ok bool) {
	return matrix.DaysUntil(t.DeadlineAt, now)
}

// MarkCompleted sets the completed flag and stamps CompletedAt with the
// given time. The stamp is unconditional: completing an already-completed
// task overwrites the previous timestamp (last write wins).
func (t *Task) MarkCompleted(now time.Time) {
	stamp := now.UTC()
	t.Completed = true
	t.CompletedAt = &stamp
}

// TaskUpdate carries a partial update for a task. Nil fields are absent
// from the request and must not overwrite existing values.
type TaskUpdate struct {
	Title       *string
	Description *string
	IsImportant *bool
	DeadlineAt  *time.Time
}

// TouchesClassification reports whether applying the update would change
// the inputs of the quadrant computation.
func (u TaskUpdate) TouchesClassification() bool {
	return u.IsImportant != nil || u.DeadlineAt != nil
}

// Apply copies the present fields of the update onto the task and
// recomputes the quadrant when importance or deadline was touched.
// A title-only or description-only update leaves the quadrant untouched.
func (t *Task) Apply(update TaskUpdate, now time.Time) error {
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.IsImportant != nil {
		t.IsImportant = *update.IsImportant
	}
	if update.DeadlineAt != nil {
		t.DeadlineAt = update.DeadlineAt
	}

	if update.TouchesClassification() {
		t.Reclassify(now)
	}

	return t.Validate()
}

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
	"github.com/matveyg/eisenhower-api/internal/domain/policy"
	"github.com/matveyg/eisenhower-api/internal/platform/logger"
	"github.com/matveyg/eisenhower-api/internal/store"
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewTaskInput carries the caller-supplied fields for task creation.
// The owner is always the authenticated principal, never an input field.
type NewTaskInput struct {
	Title       string
	Description string
	IsImportant bool
	DeadlineAt  *time.Time
}

// DeletedTask is the confirmation payload for a delete: the removed task's
// identity, captured before the row disappears.
type DeletedTask struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TaskService provides task-related operations with ownership enforcement.
//
// Every operation takes the authenticated principal. Single-task operations
// reject inaccessible tasks with ErrNotOwned after the fetch; collection
// operations instead scope the query to the principal's tasks, so another
// user's tasks are silently absent rather than forbidden. The two disclosure
// policies are intentional and documented per operation.
type TaskService interface {
	// Create validates and persists a new task owned by the principal,
	// classified into its quadrant at creation time.
	Create(ctx context.Context, p policy.Principal, input NewTaskInput) (*domain.Task, error)

	// Get retrieves a single task. Returns store.ErrTaskNotFound if absent
	// and ErrNotOwned if the principal may not access it.
	Get(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error)

	// List retrieves the principal's visible tasks. Empty is not an error.
	List(ctx context.Context, p policy.Principal) ([]*domain.Task, error)

	// ListByQuadrant retrieves visible tasks in one quadrant. The quadrant
	// token is validated before storage is touched.
	ListByQuadrant(ctx context.Context, p policy.Principal, quadrant string) ([]*domain.Task, error)

	// ListByStatus retrieves visible tasks filtered by "completed" or
	// "pending". Unknown tokens return ErrInvalidStatusFilter.
	ListByStatus(ctx context.Context, p policy.Principal, status string) ([]*domain.Task, error)

	// Search matches the query case-insensitively against title or
	// description. Zero matches is ErrNoSearchMatches, not an empty result.
	Search(ctx context.Context, p policy.Principal, query string) ([]*domain.Task, error)

	// ListDueToday retrieves visible tasks whose deadline falls on the
	// current calendar date. Tasks without a deadline are excluded.
	ListDueToday(ctx context.Context, p policy.Principal) ([]*domain.Task, error)

	// Update applies a partial update after an access check, recomputing
	// the quadrant only when importance or deadline was touched.
	Update(ctx context.Context, p policy.Principal, taskID int64, update domain.TaskUpdate) (*domain.Task, error)

	// Complete marks a task completed and stamps completed_at with the
	// current time. Completing twice restamps with the later time.
	Complete(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error)

	// Delete removes a task after an access check and returns its identity.
	Delete(ctx context.Context, p policy.Principal, taskID int64) (*DeletedTask, error)

	// Summarize aggregates the principal's visible tasks into quadrant and
	// completion counts.
	Summarize(ctx context.Context, p policy.Principal) (*TaskStats, error)

	// DeadlineReport returns the principal's pending deadlined tasks
	// ordered most urgent first.
	DeadlineReport(ctx context.Context, p policy.Principal) ([]DeadlineEntry, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	db        *sql.DB
	taskStore store.TaskStore
	timeFunc  func() time.Time
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. The database handle is used for
// multi-statement operations; it may be nil in tests, in which case those
// operations run against the base store without a transaction.
// Returns an error if the task store is nil.
func NewTaskService(db *sql.DB, taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:        db,
		taskStore: taskStore,
		timeFunc:  time.Now,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, p policy.Principal, input NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(p.ID, input.Title, input.Description, input.IsImportant, input.DeadlineAt, s.timeFunc())
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", p.ID))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", p.ID))
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", p.ID),
		slog.String("quadrant", string(task.Quadrant)))
	return task, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error) {
	return s.fetchAccessible(ctx, p, taskID, "get")
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
	return s.list(ctx, p, store.TaskFilter{}, "list")
}

// ListByQuadrant implements TaskService.ListByQuadrant
func (s *taskServiceImpl) ListByQuadrant(ctx context.Context, p policy.Principal, quadrant string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q, err := matrix.ParseQuadrant(quadrant)
	if err != nil {
		log.Warn("invalid quadrant filter", slog.String("quadrant", quadrant))
		return nil, err
	}

	return s.list(ctx, p, store.TaskFilter{Quadrant: &q}, "list_by_quadrant")
}

// ListByStatus implements TaskService.ListByStatus
func (s *taskServiceImpl) ListByStatus(ctx context.Context, p policy.Principal, status string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	completed, err := ParseStatusFilter(status)
	if err != nil {
		log.Warn("invalid status filter", slog.String("status", status))
		return nil, err
	}

	return s.list(ctx, p, store.TaskFilter{Completed: &completed}, "list_by_status")
}

// Search implements TaskService.Search
func (s *taskServiceImpl) Search(ctx context.Context, p policy.Principal, query string) ([]*domain.Task, error) {
	tasks, err := s.list(ctx, p, store.TaskFilter{Search: query}, "search")
	if err != nil {
		return nil, err
	}

	// Search is the one collection operation where empty means failure.
	if len(tasks) == 0 {
		return nil, ErrNoSearchMatches
	}

	return tasks, nil
}

// ListDueToday implements TaskService.ListDueToday
func (s *taskServiceImpl) ListDueToday(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
	today := s.timeFunc()
	return s.list(ctx, p, store.TaskFilter{DueOn: &today}, "list_due_today")
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(ctx context.Context, p policy.Principal, taskID int64, update domain.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.fetchAccessible(ctx, p, taskID, "update")
	if err != nil {
		return nil, err
	}

	if err := task.Apply(update, s.timeFunc()); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return nil, NewTaskServiceError("update", "failed to save task", err)
	}

	log.Info("task updated",
		slog.Int64("task_id", taskID),
		slog.String("quadrant", string(task.Quadrant)))
	return task, nil
}

// Complete implements TaskService.Complete
func (s *taskServiceImpl) Complete(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.fetchAccessible(ctx, p, taskID, "complete")
	if err != nil {
		return nil, err
	}

	task.MarkCompleted(s.timeFunc())

	if err := s.taskStore.Update(ctx, task); err != nil {
		log.Error("failed to complete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return nil, NewTaskServiceError("complete", "failed to save task", err)
	}

	log.Info("task completed", slog.Int64("task_id", taskID))
	return task, nil
}

// Delete implements TaskService.Delete
// The access check, identity capture and row removal run in a single
// transaction so the returned identity always matches the removed row.
func (s *taskServiceImpl) Delete(ctx context.Context, p policy.Principal, taskID int64) (*DeletedTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *DeletedTask
	err := s.inTransaction(ctx, func(ctx context.Context, ts store.TaskStore) error {
		task, err := s.fetchAccessibleFrom(ctx, ts, p, taskID, "delete")
		if err != nil {
			return err
		}

		// Capture identity before the row is gone.
		deleted = &DeletedTask{ID: task.ID, Title: task.Title}

		if err := ts.Delete(ctx, taskID); err != nil {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", taskID))
			return NewTaskServiceError("delete", "failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task deleted", slog.Int64("task_id", taskID))
	return deleted, nil
}

// Summarize implements TaskService.Summarize
func (s *taskServiceImpl) Summarize(ctx context.Context, p policy.Principal) (*TaskStats, error) {
	tasks, err := s.list(ctx, p, store.TaskFilter{}, "summarize")
	if err != nil {
		return nil, err
	}

	stats := Summarize(tasks)
	return &stats, nil
}

// DeadlineReport implements TaskService.DeadlineReport
func (s *taskServiceImpl) DeadlineReport(ctx context.Context, p policy.Principal) ([]DeadlineEntry, error) {
	tasks, err := s.list(ctx, p, store.TaskFilter{}, "deadline_report")
	if err != nil {
		return nil, err
	}

	return DeadlineReport(tasks, s.timeFunc()), nil
}

// inTransaction runs fn against a transaction-scoped store when a database
// handle is present, and directly against the base store otherwise.
func (s *taskServiceImpl) inTransaction(ctx context.Context, fn func(context.Context, store.TaskStore) error) error {
	if s.db == nil {
		return fn(ctx, s.taskStore)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.taskStore.WithTx(tx))
	})
}

// fetchAccessible retrieves a task and enforces the access policy on it.
// Inaccessible tasks come back as ErrNotOwned; the task content is never
// returned across the ownership boundary.
func (s *taskServiceImpl) fetchAccessible(ctx context.Context, p policy.Principal, taskID int64, operation string) (*domain.Task, error) {
	return s.fetchAccessibleFrom(ctx, s.taskStore, p, taskID, operation)
}

func (s *taskServiceImpl) fetchAccessibleFrom(ctx context.Context, ts store.TaskStore, p policy.Principal, taskID int64, operation string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := ts.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task not found", slog.Int64("task_id", taskID))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", taskID))
		return nil, NewTaskServiceError(operation, "failed to retrieve task", err)
	}

	if !policy.CanAccess(p, task.UserID) {
		log.Warn("access denied to task",
			slog.Int64("task_id", taskID),
			slog.Int64("caller_id", p.ID))
		return nil, ErrNotOwned
	}

	return task, nil
}

// list runs a scoped List against the store. The owner scope from the access
// policy is always applied on top of the caller's filter.
func (s *taskServiceImpl) list(ctx context.Context, p policy.Principal, filter store.TaskFilter, operation string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter.OwnerID = policy.Scope(p)

	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Int64("caller_id", p.ID))
		return nil, NewTaskServiceError(operation, "failed to list tasks", err)
	}

	return tasks, nil
}

// ParseStatusFilter maps a status token to a completed-flag filter value.
func ParseStatusFilter(status string) (bool, error) {
	switch status {
	case "completed":
		return true, nil
	case "pending":
		return false, nil
	default:
		return false, ErrInvalidStatusFilter
	}
}

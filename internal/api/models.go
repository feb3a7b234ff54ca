package api

import (
	"time"

	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
	"github.com/matveyg/eisenhower-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Nickname string `json:"nickname" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=1"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID int64 `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// UserResponse defines the current-user payload.
type UserResponse struct {
	ID        int64       `json:"id"`
	Nickname  string      `json:"nickname"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserWithTaskCountResponse is one row of the admin user listing.
type UserWithTaskCountResponse struct {
	ID        int64       `json:"id"`
	Nickname  string      `json:"nickname"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	TaskCount int         `json:"task_count"`
}

// CreateTaskRequest defines the payload for task creation. The quadrant is
// never accepted from the caller; it is derived from importance and deadline.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=3,max=100"`
	Description string     `json:"description" validate:"max=500"`
	IsImportant bool       `json:"is_important"`
	DeadlineAt  *time.Time `json:"deadline_at"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields leave the stored values untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"        validate:"omitempty,min=3,max=100"`
	Description *string    `json:"description"  validate:"omitempty,max=500"`
	IsImportant *bool      `json:"is_important"`
	DeadlineAt  *time.Time `json:"deadline_at"`
}

// TaskResponse is the external shape of a task. IsUrgent and
// DaysUntilDeadline are recomputed at response time; the stored quadrant is
// returned as-is and may lag behind them.
type TaskResponse struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	IsImportant       bool            `json:"is_important"`
	DeadlineAt        *time.Time      `json:"deadline_at,omitempty"`
	Quadrant          matrix.Quadrant `json:"quadrant"`
	IsUrgent          bool            `json:"is_urgent"`
	DaysUntilDeadline *int            `json:"days_until_deadline,omitempty"`
	Completed         bool            `json:"completed"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TaskListResponse wraps a task collection.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// DeleteTaskResponse confirms a deletion with the removed task's identity.
type DeleteTaskResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// StatsResponse is the aggregate summary payload.
type StatsResponse struct {
	TotalCount int                     `json:"total_count"`
	ByQuadrant map[matrix.Quadrant]int `json:"by_quadrant"`
	ByStatus   service.StatusCounts    `json:"by_status"`
}

// DeadlineReportResponse wraps the deadline report rows.
type DeadlineReportResponse struct {
	Tasks []service.DeadlineEntry `json:"tasks"`
	Count int                     `json:"count"`
}

// NewTaskResponse converts a domain task to its external shape, recomputing
// the read-time derived fields against the supplied clock.
func NewTaskResponse(task *domain.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		IsImportant: task.IsImportant,
		DeadlineAt:  task.DeadlineAt,
		Quadrant:    task.Quadrant,
		IsUrgent:    task.IsUrgent(now),
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
	}
	if days, ok := task.DaysUntilDeadline(now); ok {
		resp.DaysUntilDeadline = &days
	}
	return resp
}

// NewTaskListResponse converts a task collection to its external shape.
func NewTaskListResponse(tasks []*domain.Task, now time.Time) TaskListResponse {
	items := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, NewTaskResponse(task, now))
	}
	return TaskListResponse{Tasks: items, Count: len(items)}
}

// NewUserResponse converts a domain user to its external shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

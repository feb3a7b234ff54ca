package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matveyg/eisenhower-api/internal/api/shared"
	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
	"github.com/matveyg/eisenhower-api/internal/domain/policy"
	"github.com/matveyg/eisenhower-api/internal/service"
	"github.com/matveyg/eisenhower-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTaskService is a mock implementation of the TaskService interface
type mockTaskService struct {
	createFn         func(ctx context.Context, p policy.Principal, input service.NewTaskInput) (*domain.Task, error)
	getFn            func(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error)
	listFn           func(ctx context.Context, p policy.Principal) ([]*domain.Task, error)
	listByQuadrantFn func(ctx context.Context, p policy.Principal, quadrant string) ([]*domain.Task, error)
	listByStatusFn   func(ctx context.Context, p policy.Principal, status string) ([]*domain.Task, error)
	searchFn         func(ctx context.Context, p policy.Principal, query string) ([]*domain.Task, error)
	listDueTodayFn   func(ctx context.Context, p policy.Principal) ([]*domain.Task, error)
	updateFn         func(ctx context.Context, p policy.Principal, taskID int64, update domain.TaskUpdate) (*domain.Task, error)
	completeFn       func(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error)
	deleteFn         func(ctx context.Context, p policy.Principal, taskID int64) (*service.DeletedTask, error)
	summarizeFn      func(ctx context.Context, p policy.Principal) (*service.TaskStats, error)
	deadlineReportFn func(ctx context.Context, p policy.Principal) ([]service.DeadlineEntry, error)
}

func (m *mockTaskService) Create(ctx context.Context, p policy.Principal, input service.NewTaskInput) (*domain.Task, error) {
	return m.createFn(ctx, p, input)
}

func (m *mockTaskService) Get(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error) {
	return m.getFn(ctx, p, taskID)
}

func (m *mockTaskService) List(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
	return m.listFn(ctx, p)
}

func (m *mockTaskService) ListByQuadrant(ctx context.Context, p policy.Principal, quadrant string) ([]*domain.Task, error) {
	return m.listByQuadrantFn(ctx, p, quadrant)
}

func (m *mockTaskService) ListByStatus(ctx context.Context, p policy.Principal, status string) ([]*domain.Task, error) {
	return m.listByStatusFn(ctx, p, status)
}

func (m *mockTaskService) Search(ctx context.Context, p policy.Principal, query string) ([]*domain.Task, error) {
	return m.searchFn(ctx, p, query)
}

func (m *mockTaskService) ListDueToday(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
	return m.listDueTodayFn(ctx, p)
}

func (m *mockTaskService) Update(ctx context.Context, p policy.Principal, taskID int64, update domain.TaskUpdate) (*domain.Task, error) {
	return m.updateFn(ctx, p, taskID, update)
}

func (m *mockTaskService) Complete(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error) {
	return m.completeFn(ctx, p, taskID)
}

func (m *mockTaskService) Delete(ctx context.Context, p policy.Principal, taskID int64) (*service.DeletedTask, error) {
	return m.deleteFn(ctx, p, taskID)
}

func (m *mockTaskService) Summarize(ctx context.Context, p policy.Principal) (*service.TaskStats, error) {
	return m.summarizeFn(ctx, p)
}

func (m *mockTaskService) DeadlineReport(ctx context.Context, p policy.Principal) ([]service.DeadlineEntry, error) {
	return m.deadlineReportFn(ctx, p)
}

// withPrincipal injects an authenticated identity the way the auth
// middleware would.
func withPrincipal(r *http.Request, userID int64, role domain.Role) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
	return r.WithContext(ctx)
}

// withPathParam attaches a chi route parameter to the request.
func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testTask(id int64) *domain.Task {
	return &domain.Task{
		ID:          id,
		UserID:      5,
		Title:       "Write release notes",
		IsImportant: true,
		Quadrant:    matrix.QuadrantQ2,
		CreatedAt:   time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestTaskHandler_Create(t *testing.T) {
	t.Run("creates task and returns derived fields", func(t *testing.T) {
		deadline := time.Now().UTC().Add(24 * time.Hour)
		svc := &mockTaskService{
			createFn: func(ctx context.Context, p policy.Principal, input service.NewTaskInput) (*domain.Task, error) {
				task := testTask(1)
				task.DeadlineAt = &deadline
				task.Quadrant = matrix.QuadrantQ1
				return task, nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		body, _ := json.Marshal(CreateTaskRequest{
			Title:       "Write release notes",
			IsImportant: true,
			DeadlineAt:  &deadline,
		})
		req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body))
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.Create(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp TaskResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, matrix.QuadrantQ1, resp.Quadrant)
		assert.True(t, resp.IsUrgent)
		require.NotNil(t, resp.DaysUntilDeadline)
		assert.Equal(t, 1, *resp.DaysUntilDeadline)
	})

	t.Run("rejects short title with 400", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{}, slog.Default())

		body, _ := json.Marshal(CreateTaskRequest{Title: "ab"})
		req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(body))
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.Create(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects unauthenticated request with 401", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{}, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader([]byte("{}")))
		rr := httptest.NewRecorder()

		handler.Create(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestTaskHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", serviceErr: nil, expectedStatus: http.StatusOK},
		{name: "not found", serviceErr: store.ErrTaskNotFound, expectedStatus: http.StatusNotFound},
		{name: "forbidden", serviceErr: service.ErrNotOwned, expectedStatus: http.StatusForbidden},
		{name: "storage unavailable", serviceErr: store.ErrUnavailable, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTaskService{
				getFn: func(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return testTask(taskID), nil
				},
			}
			handler := NewTaskHandler(svc, slog.Default())

			req := httptest.NewRequest(http.MethodGet, "/tasks/7", nil)
			req = withPrincipal(req, 5, domain.RoleUser)
			req = withPathParam(req, "id", "7")
			rr := httptest.NewRecorder()

			handler.Get(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}

	t.Run("rejects non-numeric id with 400", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{}, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/abc", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "id", "abc")
		rr := httptest.NewRecorder()

		handler.Get(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTaskHandler_List(t *testing.T) {
	t.Run("plain list", func(t *testing.T) {
		svc := &mockTaskService{
			listFn: func(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
				return []*domain.Task{testTask(1), testTask(2)}, nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("empty list is still 200", func(t *testing.T) {
		svc := &mockTaskService{
			listFn: func(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
				return []*domain.Task{}, nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.List(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Count)
	})
}

func TestTaskHandler_ListByQuadrant(t *testing.T) {
	t.Run("passes quadrant token through", func(t *testing.T) {
		var gotQuadrant string
		svc := &mockTaskService{
			listByQuadrantFn: func(ctx context.Context, p policy.Principal, quadrant string) ([]*domain.Task, error) {
				gotQuadrant = quadrant
				return []*domain.Task{}, nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/quadrant/Q3", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "quadrant", "Q3")
		rr := httptest.NewRecorder()

		handler.ListByQuadrant(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Q3", gotQuadrant)
	})

	t.Run("invalid quadrant returns 400", func(t *testing.T) {
		svc := &mockTaskService{
			listByQuadrantFn: func(ctx context.Context, p policy.Principal, quadrant string) ([]*domain.Task, error) {
				return nil, matrix.ErrInvalidQuadrant
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/quadrant/Q9", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "quadrant", "Q9")
		rr := httptest.NewRecorder()

		handler.ListByQuadrant(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTaskHandler_ListByStatus(t *testing.T) {
	t.Run("invalid status token returns 400", func(t *testing.T) {
		svc := &mockTaskService{
			listByStatusFn: func(ctx context.Context, p policy.Principal, status string) ([]*domain.Task, error) {
				return nil, service.ErrInvalidStatusFilter
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/status/done", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "status", "done")
		rr := httptest.NewRecorder()

		handler.ListByStatus(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("completed filter passes through", func(t *testing.T) {
		var gotStatus string
		svc := &mockTaskService{
			listByStatusFn: func(ctx context.Context, p policy.Principal, status string) ([]*domain.Task, error) {
				gotStatus = status
				return []*domain.Task{testTask(1)}, nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/status/completed", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "status", "completed")
		rr := httptest.NewRecorder()

		handler.ListByStatus(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "completed", gotStatus)
	})
}

func TestTaskHandler_Search(t *testing.T) {
	t.Run("no matches returns 404", func(t *testing.T) {
		svc := &mockTaskService{
			searchFn: func(ctx context.Context, p policy.Principal, query string) ([]*domain.Task, error) {
				return nil, service.ErrNoSearchMatches
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/search?q=nothing", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.Search(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("query shorter than two characters returns 400", func(t *testing.T) {
		handler := NewTaskHandler(&mockTaskService{}, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/search?q=a", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.Search(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("matches are returned", func(t *testing.T) {
		var gotQuery string
		svc := &mockTaskService{
			searchFn: func(ctx context.Context, p policy.Principal, query string) ([]*domain.Task, error) {
				gotQuery = query
				return []*domain.Task{testTask(1)}, nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/tasks/search?q=release", nil)
		req = withPrincipal(req, 5, domain.RoleUser)
		rr := httptest.NewRecorder()

		handler.Search(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "release", gotQuery)
		var resp TaskListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})
}

func TestTaskHandler_DueToday(t *testing.T) {
	called := false
	svc := &mockTaskService{
		listDueTodayFn: func(ctx context.Context, p policy.Principal) ([]*domain.Task, error) {
			called = true
			return []*domain.Task{}, nil
		},
	}
	handler := NewTaskHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/tasks/due-today", nil)
	req = withPrincipal(req, 5, domain.RoleUser)
	rr := httptest.NewRecorder()

	handler.DueToday(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestTaskHandler_Update(t *testing.T) {
	t.Run("partial update passes only present fields", func(t *testing.T) {
		var gotUpdate domain.TaskUpdate
		svc := &mockTaskService{
			updateFn: func(ctx context.Context, p policy.Principal, taskID int64, update domain.TaskUpdate) (*domain.Task, error) {
				gotUpdate = update
				return testTask(taskID), nil
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		body := []byte(`{"title": "New title"}`)
		req := httptest.NewRequest(http.MethodPatch, "/tasks/7", bytes.NewReader(body))
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "id", "7")
		rr := httptest.NewRecorder()

		handler.Update(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotUpdate.Title)
		assert.Equal(t, "New title", *gotUpdate.Title)
		assert.Nil(t, gotUpdate.Description)
		assert.Nil(t, gotUpdate.IsImportant)
		assert.Nil(t, gotUpdate.DeadlineAt)
	})

	t.Run("forbidden update returns 403", func(t *testing.T) {
		svc := &mockTaskService{
			updateFn: func(ctx context.Context, p policy.Principal, taskID int64, update domain.TaskUpdate) (*domain.Task, error) {
				return nil, service.ErrNotOwned
			},
		}
		handler := NewTaskHandler(svc, slog.Default())

		req := httptest.NewRequest(http.MethodPatch, "/tasks/7", bytes.NewReader([]byte(`{}`)))
		req = withPrincipal(req, 5, domain.RoleUser)
		req = withPathParam(req, "id", "7")
		rr := httptest.NewRecorder()

		handler.Update(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestTaskHandler_Complete(t *testing.T) {
	completedAt := time.Now().UTC()
	svc := &mockTaskService{
		completeFn: func(ctx context.Context, p policy.Principal, taskID int64) (*domain.Task, error) {
			task := testTask(taskID)
			task.Completed = true
			task.CompletedAt = &completedAt
			return task, nil
		},
	}
	handler := NewTaskHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/tasks/7/complete", nil)
	req = withPrincipal(req, 5, domain.RoleUser)
	req = withPathParam(req, "id", "7")
	rr := httptest.NewRecorder()

	handler.Complete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Completed)
	require.NotNil(t, resp.CompletedAt)
}

func TestTaskHandler_Delete(t *testing.T) {
	svc := &mockTaskService{
		deleteFn: func(ctx context.Context, p policy.Principal, taskID int64) (*service.DeletedTask, error) {
			return &service.DeletedTask{ID: taskID, Title: "Write release notes"}, nil
		},
	}
	handler := NewTaskHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodDelete, "/tasks/7", nil)
	req = withPrincipal(req, 5, domain.RoleUser)
	req = withPathParam(req, "id", "7")
	rr := httptest.NewRecorder()

	handler.Delete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp DeleteTaskResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "Write release notes", resp.Title)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/matveyg/eisenhower-api/internal/api/shared"
	"github.com/matveyg/eisenhower-api/internal/service"
)

// StatsHandler handles statistics HTTP requests
type StatsHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(taskService service.TaskService, logger *slog.Logger) *StatsHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for StatsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatsHandler")
	}

	return &StatsHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "stats_handler")),
	}
}

// Summary handles GET /stats requests, returning quadrant and completion
// counts over the caller's visible tasks.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	stats, err := h.taskService.Summarize(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		TotalCount: stats.TotalCount,
		ByQuadrant: stats.ByQuadrant,
		ByStatus:   stats.ByStatus,
	})
}

// DeadlineReport handles GET /stats/deadlines requests, returning pending
// deadlined tasks ordered most urgent first.
func (h *StatsHandler) DeadlineReport(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	report, err := h.taskService.DeadlineReport(r.Context(), p)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute deadline report")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeadlineReportResponse{
		Tasks: report,
		Count: len(report),
	})
}

package service

import (
	"sort"
	"time"

	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
)

// StatusCounts splits a task collection by completion status.
type StatusCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// TaskStats is the aggregate summary of a task collection: total size,
// per-quadrant counts, and completion counts. Quadrants with no tasks are
// present with a zero count so the map is always exhaustive.
type TaskStats struct {
	TotalCount int                     `json:"total_count"`
	ByQuadrant map[matrix.Quadrant]int `json:"by_quadrant"`
	ByStatus   StatusCounts            `json:"by_status"`
}

// DeadlineEntry is one row of the deadline report: a pending task with a
// deadline, annotated with its live days-until-deadline value.
type DeadlineEntry struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	DeadlineAt        time.Time `json:"deadline_at"`
	CreatedAt         time.Time `json:"created_at"`
	DaysUntilDeadline int       `json:"days_until_deadline"`
}

// Summarize aggregates an already access-filtered task collection.
// It applies no authorization; callers must scope the collection first.
func Summarize(tasks []*domain.Task) TaskStats {
	stats := TaskStats{
		TotalCount: len(tasks),
		ByQuadrant: map[matrix.Quadrant]int{
			matrix.QuadrantQ1: 0,
			matrix.QuadrantQ2: 0,
			matrix.QuadrantQ3: 0,
			matrix.QuadrantQ4: 0,
		},
	}

	for _, task := range tasks {
		stats.ByQuadrant[task.Quadrant]++
		if task.Completed {
			stats.ByStatus.Completed++
		} else {
			stats.ByStatus.Pending++
		}
	}

	return stats
}

// DeadlineReport filters the collection to pending tasks with a deadline and
// returns them ordered by days-until-deadline ascending (most urgent first,
// overdue tasks before everything else). The sort is stable, so ties keep
// the collection's original order.
func DeadlineReport(tasks []*domain.Task, now time.Time) []DeadlineEntry {
	entries := make([]DeadlineEntry, 0)
	for _, task := range tasks {
		if task.Completed || task.DeadlineAt == nil {
			continue
		}
		days, ok := task.DaysUntilDeadline(now)
		if !ok {
			continue
		}
		entries = append(entries, DeadlineEntry{
			ID:                task.ID,
			Title:             task.Title,
			Description:       task.Description,
			DeadlineAt:        *task.DeadlineAt,
			CreatedAt:         task.CreatedAt,
			DaysUntilDeadline: days,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysUntilDeadline < entries[j].DaysUntilDeadline
	})

	return entries
}

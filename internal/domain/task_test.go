package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/matveyg/eisenhower-api/internal/domain/matrix"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func deadlineIn(days int) *time.Time {
	d := testNow.AddDate(0, 0, days)
	return &d
}

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask(5, "Write report", "quarterly numbers", true, deadlineIn(1), testNow)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.UserID != 5 {
		t.Errorf("Expected user ID 5, got %d", task.UserID)
	}

	if task.Quadrant != matrix.QuadrantQ1 {
		t.Errorf("Expected quadrant Q1, got %s", task.Quadrant)
	}

	if task.Completed {
		t.Error("Expected new task to be pending")
	}

	if task.CompletedAt != nil {
		t.Error("Expected nil CompletedAt on a new task")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Unimportant task without deadline lands in Q4.
	task, err = NewTask(5, "Read a book", "", false, nil, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Quadrant != matrix.QuadrantQ4 {
		t.Errorf("Expected quadrant Q4, got %s", task.Quadrant)
	}

	// Test invalid user ID
	_, err = NewTask(0, "Write report", "", true, nil, testNow)
	if err != ErrTaskUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskUserIDEmpty, err)
	}

	// Test title too short
	_, err = NewTask(5, "ab", "", true, nil, testNow)
	if err != ErrTaskTitleTooShort {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooShort, err)
	}

	// Test title too long
	_, err = NewTask(5, strings.Repeat("a", 101), "", true, nil, testNow)
	if err != ErrTaskTitleTooLong {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}

	// Test description too long
	_, err = NewTask(5, "Write report", strings.Repeat("a", 501), true, nil, testNow)
	if err != ErrTaskDescriptionTooLong {
		t.Errorf("Expected error %v, got %v", ErrTaskDescriptionTooLong, err)
	}
}

func TestTaskQuadrantTable(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name      string
		important bool
		deadline  *time.Time
		expected  matrix.Quadrant
	}{
		{name: "important and due tomorrow", important: true, deadline: deadlineIn(1), expected: matrix.QuadrantQ1},
		{name: "important without deadline", important: true, deadline: nil, expected: matrix.QuadrantQ2},
		{name: "important and due far out", important: true, deadline: deadlineIn(30), expected: matrix.QuadrantQ2},
		{name: "unimportant and overdue", important: false, deadline: deadlineIn(-2), expected: matrix.QuadrantQ3},
		{name: "unimportant without deadline", important: false, deadline: nil, expected: matrix.QuadrantQ4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task, err := NewTask(1, "Some task", "", tc.important, tc.deadline, testNow)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if task.Quadrant != tc.expected {
				t.Errorf("Expected quadrant %s, got %s", tc.expected, task.Quadrant)
			}
		})
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask(1, "Original title", "original description", true, deadlineIn(1), testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Quadrant != matrix.QuadrantQ1 {
		t.Fatalf("Expected quadrant Q1, got %s", task.Quadrant)
	}

	// Title-only update must not touch the quadrant even if real time has
	// moved past the urgency threshold.
	later := testNow.AddDate(0, 0, 10)
	newTitle := "Renamed"
	if err := task.Apply(TaskUpdate{Title: &newTitle}, later); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != "Renamed" {
		t.Errorf("Expected title to be updated, got %q", task.Title)
	}
	if task.Description != "original description" {
		t.Errorf("Expected unset description to be preserved, got %q", task.Description)
	}
	if task.Quadrant != matrix.QuadrantQ1 {
		t.Errorf("Expected quadrant to remain Q1, got %s", task.Quadrant)
	}

	// A deadline update alone recomputes the quadrant.
	farDeadline := testNow.AddDate(0, 0, 30)
	if err := task.Apply(TaskUpdate{DeadlineAt: &farDeadline}, testNow); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Quadrant != matrix.QuadrantQ2 {
		t.Errorf("Expected quadrant Q2 after deadline change, got %s", task.Quadrant)
	}

	// An importance update alone recomputes the quadrant with post-update
	// values of both inputs.
	notImportant := false
	if err := task.Apply(TaskUpdate{IsImportant: &notImportant}, testNow); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Quadrant != matrix.QuadrantQ4 {
		t.Errorf("Expected quadrant Q4 after importance change, got %s", task.Quadrant)
	}

	// Invalid values are rejected.
	shortTitle := "ab"
	if err := task.Apply(TaskUpdate{Title: &shortTitle}, testNow); err != ErrTaskTitleTooShort {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooShort, err)
	}
}

func TestTaskMarkCompleted(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask(1, "Finish thesis", "", true, nil, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	task.MarkCompleted(first)

	if !task.Completed {
		t.Error("Expected task to be completed")
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Errorf("Expected CompletedAt %v, got %v", first, task.CompletedAt)
	}

	// Completing again restamps the timestamp; completion is deliberately
	// not idempotent.
	second := first.Add(2 * time.Hour)
	task.MarkCompleted(second)

	if task.CompletedAt == nil || !task.CompletedAt.Equal(second) {
		t.Errorf("Expected CompletedAt %v after second completion, got %v", second, task.CompletedAt)
	}
	if !task.CompletedAt.After(first) {
		t.Error("Expected second completion stamp to be later than the first")
	}
}

func TestTaskReadTimeDerivedFields(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask(1, "Pay taxes", "", true, deadlineIn(2), testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !task.IsUrgent(testNow) {
		t.Error("Expected task due in 2 days to be urgent")
	}

	days, ok := task.DaysUntilDeadline(testNow)
	if !ok || days != 2 {
		t.Errorf("Expected 2 days until deadline, got %d (ok=%v)", days, ok)
	}

	// The stored quadrant does not move with the clock, but the live
	// urgency does.
	muchLater := testNow.AddDate(0, 0, 6)
	if !task.IsUrgent(muchLater) {
		t.Error("Expected overdue task to be urgent")
	}
	days, ok = task.DaysUntilDeadline(muchLater)
	if !ok || days != -4 {
		t.Errorf("Expected -4 days until deadline, got %d (ok=%v)", days, ok)
	}
	if task.Quadrant != matrix.QuadrantQ1 {
		t.Errorf("Expected stored quadrant to stay Q1, got %s", task.Quadrant)
	}

	noDeadline, err := NewTask(1, "Read a book", "", false, nil, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if noDeadline.IsUrgent(testNow) {
		t.Error("Expected task without deadline to never be urgent")
	}
	if _, ok := noDeadline.DaysUntilDeadline(testNow); ok {
		t.Error("Expected no day count for a task without deadline")
	}
}

// Package matrix implements the Eisenhower matrix classification rules:
// urgency derived from a deadline and the quadrant mapping from the
// (importance, urgency) pair. All functions are pure; callers supply the
// reference time.
package matrix

import (
	"errors"
	"time"
)

// Quadrant identifies one cell of the Eisenhower matrix.
type Quadrant string

// The four quadrants. Q1 is important and urgent, Q4 is neither.
const (
	QuadrantQ1 Quadrant = "Q1"
	QuadrantQ2 Quadrant = "Q2"
	QuadrantQ3 Quadrant = "Q3"
	QuadrantQ4 Quadrant = "Q4"
)

// UrgencyThresholdDays is the number of calendar days within which a
// deadline makes a task urgent. Overdue and due-today deadlines are
// always urgent.
const UrgencyThresholdDays = 3

// ErrInvalidQuadrant is returned when a quadrant token is not one of Q1-Q4.
var ErrInvalidQuadrant = errors.New("invalid quadrant")

// DaysUntil returns the number of calendar days between now and the deadline,
// ignoring the time-of-day component of both values. The result is negative
// for overdue deadlines. A nil deadline has no day count and returns ok=false.
func DaysUntil(deadline *time.Time, now time.Time) (days int, ok bool) {
	if deadline == nil {
		return 0, false
	}

	d := truncateToDate(*deadline)
	n := truncateToDate(now)

	return int(d.Sub(n).Hours() / 24), true
}

// IsUrgent reports whether the deadline is at most UrgencyThresholdDays
// calendar days away. Overdue deadlines count as urgent. A nil deadline is
// never urgent.
func IsUrgent(deadline *time.Time, now time.Time) bool {
	days, ok := DaysUntil(deadline, now)
	if !ok {
		return false
	}
	return days <= UrgencyThresholdDays
}

// Classify maps an (importance, urgency) pair to its quadrant.
// The mapping is total: every combination of the two booleans has exactly
// one quadrant.
func Classify(isImportant, isUrgent bool) Quadrant {
	switch {
	case isImportant && isUrgent:
		return QuadrantQ1
	case isImportant && !isUrgent:
		return QuadrantQ2
	case !isImportant && isUrgent:
		return QuadrantQ3
	default:
		return QuadrantQ4
	}
}

// ParseQuadrant converts a string token to a Quadrant.
// Returns ErrInvalidQuadrant for anything other than Q1, Q2, Q3 or Q4.
func ParseQuadrant(s string) (Quadrant, error) {
	switch Quadrant(s) {
	case QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4:
		return Quadrant(s), nil
	default:
		return "", ErrInvalidQuadrant
	}
}

// IsValidQuadrant reports whether q is one of the four quadrants.
func IsValidQuadrant(q Quadrant) bool {
	switch q {
	case QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4:
		return true
	default:
		return false
	}
}

// truncateToDate strips the time-of-day component, keeping only the calendar
// date. Both operands are normalized to UTC so that day arithmetic is not
// skewed by mixed time zones.
func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

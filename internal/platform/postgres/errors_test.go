package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/matveyg/eisenhower-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// timeoutError is a minimal net.Error for exercising the unavailable path.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestMapError(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: nil,
		},
		{
			name:     "no rows maps to not found",
			err:      sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			err:      &pgconn.PgError{Code: uniqueViolationCode},
			expected: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to invalid entity",
			err:      &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "check violation maps to invalid entity",
			err:      &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_quadrant_check"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "network error maps to unavailable",
			err:      fmt.Errorf("exec: %w", timeoutError{}),
			expected: store.ErrUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.expected == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.expected)
		})
	}

	// Unclassified errors pass through unchanged.
	plain := errors.New("something else")
	assert.Same(t, plain, MapError(plain))
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()
	sentinels := map[string]error{
		"users_email_key":    store.ErrEmailExists,
		"users_nickname_key": store.ErrNicknameExists,
	}

	emailErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"}
	assert.ErrorIs(t, MapUniqueViolation(emailErr, sentinels), store.ErrEmailExists)

	nicknameErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_nickname_key"}
	assert.ErrorIs(t, MapUniqueViolation(nicknameErr, sentinels), store.ErrNicknameExists)

	// Unknown constraint falls back to the generic duplicate sentinel.
	otherErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "something_else"}
	assert.ErrorIs(t, MapUniqueViolation(otherErr, sentinels), store.ErrDuplicate)

	// Non-unique-violation errors pass through.
	plain := errors.New("not a violation")
	assert.Same(t, plain, MapUniqueViolation(plain, sentinels))
}

func TestIsUnavailableError(t *testing.T) {
	t.Parallel()
	assert.False(t, IsUnavailableError(nil))
	assert.False(t, IsUnavailableError(errors.New("plain")))
	assert.True(t, IsUnavailableError(timeoutError{}))
	assert.True(t, IsUnavailableError(&net.OpError{Op: "dial", Err: errors.New("refused")}))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()
	assert.Error(t, CheckRowsAffected(nil, "task"))

	err := CheckRowsAffected(fakeResult{n: 0}, "task")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, CheckRowsAffected(fakeResult{n: 1}, "task"))
}

type fakeResult struct {
	n int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, nil }

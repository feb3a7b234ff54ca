// Package service provides application-level services for managing tasks,
// matrix statistics, and users.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// This is typically returned when a user attempts to read or modify a task they don't own.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrNoSearchMatches indicates that a search query matched zero tasks.
	// Search treats an empty result as an error, unlike List which returns
	// an empty collection silently.
	// API layer should map this to HTTP 404 Not Found.
	ErrNoSearchMatches = errors.New("no tasks match the search query")

	// ErrInvalidStatusFilter indicates an unrecognized status filter token.
	// Valid tokens are "completed" and "pending".
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidStatusFilter = errors.New("status filter must be one of completed, pending")
)

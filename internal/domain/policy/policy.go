// Package policy implements the role and ownership rules that decide which
// tasks a caller may see or modify. The same predicate backs single-resource
// access checks and collection scoping so the admin/owner branch lives in
// exactly one place.
package policy

import "github.com/matveyg/eisenhower-api/internal/domain"

// Principal is the authenticated identity an operation runs as, resolved
// from the request credentials by the auth middleware.
type Principal struct {
	ID   int64
	Role domain.Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// CanAccess reports whether the principal may read or mutate a task owned
// by ownerID. Admins may always; regular users only when they own the task.
// Read and write rights are deliberately identical in this system.
func CanAccess(p Principal, ownerID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.ID == ownerID
}

// Scope returns the owner filter to apply at the data-selection boundary
// for collection operations: nil for admins (full collection), the
// principal's own ID otherwise. Applying the scope in the query, rather
// than post-filtering rows, is what keeps other users' tasks invisible to
// non-admins on every list endpoint.
func Scope(p Principal) *int64 {
	if p.IsAdmin() {
		return nil
	}
	id := p.ID
	return &id
}

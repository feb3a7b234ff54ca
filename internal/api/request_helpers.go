package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/matveyg/eisenhower-api/internal/api/shared"
	"github.com/matveyg/eisenhower-api/internal/domain"
	"github.com/matveyg/eisenhower-api/internal/domain/policy"
)

// getPrincipalFromContext extracts the authenticated principal from the
// request context. Both the user ID and the role are placed there by the
// authentication middleware.
func getPrincipalFromContext(r *http.Request) (policy.Principal, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	if !ok || userID <= 0 {
		return policy.Principal{}, false
	}

	role, ok := r.Context().Value(shared.UserRoleContextKey).(domain.Role)
	if !ok || !domain.IsValidRole(role) {
		return policy.Principal{}, false
	}

	return policy.Principal{ID: userID, Role: role}, true
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// requirePrincipal extracts the principal or writes a 401 response.
// Returns false when an error response has already been written.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (policy.Principal, bool) {
	p, ok := getPrincipalFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return policy.Principal{}, false
	}
	return p, true
}

// requirePrincipalAndPathID extracts both the principal and a path ID,
// writing the appropriate error response if either is missing.
func requirePrincipalAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (policy.Principal, int64, bool) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return policy.Principal{}, 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return policy.Principal{}, 0, false
	}

	return p, id, true
}

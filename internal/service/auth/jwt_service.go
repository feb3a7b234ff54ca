// Package auth provides token issuing and password verification for the
// identity layer. Tokens carry the user's ID and role so the API middleware
// can build the request principal without a database round trip.
package auth

import (
	"context"
	"time"

	"github.com/matveyg/eisenhower-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token containing the user's
	// ID and role. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID int64, role domain.Role) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// Role is the user's role at issue time. A role change invalidates the
	// claim only at the next login; tokens are not revoked mid-lifetime.
	Role domain.Role `json:"role,omitempty"`

	// TokenType indicates the purpose of the token. Only "access" tokens
	// are issued by this service.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

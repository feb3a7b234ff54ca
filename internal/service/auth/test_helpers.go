package auth

import "time"

// NewTestJWTService creates a JWT service with an injected clock for tests.
// Production code must use NewJWTService, which validates configuration.
func NewTestJWTService(secret string, tokenLifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		timeFunc:      timeFunc,
		clockSkew:     0, // Deterministic expiry boundaries in tests
	}
}

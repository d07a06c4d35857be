package auth

import "time"

// NewJWTServiceWithTimeFunc creates a JWT service with an injected time
// source. Intended for tests that need to control token expiry.
func NewJWTServiceWithTimeFunc(
	secret string,
	tokenLifetime time.Duration,
	timeFunc func() time.Time,
) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: tokenLifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}

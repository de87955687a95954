package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/internal/utils"
)

// sessionExpiry computes the access-token expiry: now + expiresIn seconds,
// cross-checked against the token's exp claim when the token is a parseable
// JWT. The earlier of the two wins, so the scheduler never trusts an
// expiresIn that outlives the token itself.
func sessionExpiry(session *api.AuthSession, now time.Time) time.Time {
	expiry := now.Add(time.Duration(session.ExpiresIn) * time.Second)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.AccessToken, claims); err != nil {
		return expiry
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if exp.Time.After(now) && exp.Time.Before(expiry) {
			return exp.Time
		}
	}
	return expiry
}

// TokenRoles extracts the roles claim from a bearer token without verifying
// the signature. Verification is the server's job; the client only mirrors
// the claim for display decisions.
func TokenRoles(rawToken string) []string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil
	}
	if roles, ok := claims["roles"].([]any); ok {
		return utils.ToStringSlice(roles)
	}
	return nil
}

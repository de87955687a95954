package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/studienwege/go-client/api"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSessionExpiry(t *testing.T) {
	now := time.Unix(1780000000, 0)

	t.Run("opaque token falls back to expiresIn", func(t *testing.T) {
		session := &api.AuthSession{AccessToken: "opaque", ExpiresIn: 900}
		require.Equal(t, now.Add(900*time.Second), sessionExpiry(session, now))
	})

	t.Run("earlier exp claim wins", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": jwt.NewNumericDate(now.Add(300 * time.Second))})
		session := &api.AuthSession{AccessToken: token, ExpiresIn: 900}
		require.Equal(t, now.Add(300*time.Second), sessionExpiry(session, now))
	})

	t.Run("later exp claim is ignored", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": jwt.NewNumericDate(now.Add(2 * time.Hour))})
		session := &api.AuthSession{AccessToken: token, ExpiresIn: 900}
		require.Equal(t, now.Add(900*time.Second), sessionExpiry(session, now))
	})

	t.Run("already expired claim is ignored", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": jwt.NewNumericDate(now.Add(-time.Minute))})
		session := &api.AuthSession{AccessToken: token, ExpiresIn: 900}
		require.Equal(t, now.Add(900*time.Second), sessionExpiry(session, now))
	})
}

func TestTokenRoles(t *testing.T) {
	t.Run("extracts the roles claim", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"roles": []string{"USER", "ADMIN"}})
		require.Equal(t, []string{"USER", "ADMIN"}, TokenRoles(token))
	})

	t.Run("opaque tokens carry no roles", func(t *testing.T) {
		require.Nil(t, TokenRoles("not-a-jwt"))
	})

	t.Run("missing claim yields nil", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "1"})
		require.Nil(t, TokenRoles(token))
	})
}

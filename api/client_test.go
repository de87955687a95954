package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studienwege/go-client/api"
)

type testConfig struct {
	baseURL string
}

func (c testConfig) GetAPIBaseURL() string            { return c.baseURL }
func (c testConfig) GetRequestTimeout() time.Duration { return 5 * time.Second }
func (c testConfig) GetRequestsPerSecond() float64    { return 100 }

type staticToken string

func (t staticToken) AccessToken() string { return string(t) }

func envelope(t *testing.T, data any) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	return payload
}

func newClient(t *testing.T, handler http.Handler, options ...api.Option) (*api.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(testConfig{baseURL: server.URL}, options...)
	require.NoError(t, err)
	return client, server
}

func TestClient_Login(t *testing.T) {
	t.Run("direct session payload", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)
			require.Empty(t, r.Header.Get("Authorization"), "login is a public endpoint")
			require.NotEmpty(t, r.Header.Get("X-Request-ID"))

			_, _ = w.Write(envelope(t, map[string]any{
				"accessToken": "tok",
				"tokenType":   "Bearer",
				"expiresIn":   900,
				"user":        map[string]any{"id": 1, "email": "a@b.com"},
			}))
		}), api.WithTokenProvider(staticToken("should-not-be-sent")))

		result, err := client.Login(context.Background(), "a@b.com", "goodpass")
		require.NoError(t, err)
		require.True(t, result.UserExists)
		require.NotNil(t, result.AuthData)
		require.Equal(t, "tok", result.AuthData.AccessToken)
		require.EqualValues(t, 900, result.AuthData.ExpiresIn)
		require.Equal(t, "a@b.com", result.AuthData.User.Email)
	})

	t.Run("discriminated envelope with unknown email", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(envelope(t, map[string]any{
				"userExists": false,
				"preRegistrationData": map[string]any{
					"email":         "new@b.com",
					"passwordToken": "continue-123",
				},
			}))
		}))

		result, err := client.Login(context.Background(), "new@b.com", "pw")
		require.NoError(t, err)
		require.False(t, result.UserExists)
		require.Nil(t, result.AuthData)
		require.Equal(t, "continue-123", result.PreRegistrationData.PasswordToken)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":401,"message":"Invalid credentials"}`))
		}))

		_, err := client.Login(context.Background(), "a@b.com", "badpass")
		require.Error(t, err)
		// skipAuth applies: a 401 on login is a plain failure, not an
		// expired session.
		require.False(t, api.IsSessionExpired(err))
		require.EqualError(t, err, "Invalid credentials")
	})
}

func TestClient_ErrorNormalization(t *testing.T) {
	t.Run("401 on authenticated call is session expired", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":401,"message":"expired"}`))
		}), api.WithTokenProvider(staticToken("stale")))

		err := client.Logout(context.Background())
		require.Error(t, err)
		require.True(t, api.IsSessionExpired(err))
		require.EqualError(t, err, "Session expired. Please log in again.")
	})

	t.Run("401 on refresh endpoint is not session expired", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":401,"message":"no refresh cookie"}`))
		}))

		_, err := client.Refresh(context.Background())
		require.Error(t, err)
		require.False(t, api.IsSessionExpired(err))
		require.EqualError(t, err, "no refresh cookie")
	})

	t.Run("field errors become a validation error", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":400,"message":"Validation failed","errors":{"email":"must be valid"}}`))
		}))

		err := client.Register(context.Background(), api.RegisterRequest{}, "")
		require.Error(t, err)
		require.True(t, api.IsValidation(err))
		require.Equal(t, map[string]string{"email": "must be valid"}, api.FieldErrors(err))
	})

	t.Run("transport failure is normalized", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		client, err := api.New(testConfig{baseURL: server.URL})
		require.NoError(t, err)
		server.Close() // connection refused from here on

		_, listErr := client.ListComments(context.Background(), "tk-1")
		require.Error(t, listErr)
		require.True(t, api.IsNetwork(listErr))
		require.EqualError(t, listErr, "Network error occurred")

		var apiErr *api.Error
		require.ErrorAs(t, listErr, &apiErr)
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	})
}

func TestClient_BearerHeader(t *testing.T) {
	var sawAuth string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_, _ = w.Write(envelope(t, []any{}))
	}), api.WithTokenProvider(staticToken("tok-123")))

	_, err := client.ListComments(context.Background(), "tk-1")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", sawAuth)
}

func TestClient_Comments(t *testing.T) {
	t.Run("list decodes server order", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/studienkolleg/tk-1/comments", r.URL.Path)
			_, _ = w.Write(envelope(t, []map[string]any{
				{"id": 2, "title": "second"},
				{"id": 1, "title": "first"},
			}))
		}))

		comments, err := client.ListComments(context.Background(), "tk-1")
		require.NoError(t, err)
		require.Len(t, comments, 2)
		require.EqualValues(t, 2, comments[0].ID)
		require.EqualValues(t, 1, comments[1].ID)
	})

	t.Run("like hits the like subresource", func(t *testing.T) {
		var captured *http.Request
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r.Clone(context.Background())
			_, _ = w.Write(envelope(t, nil))
		}))

		require.NoError(t, client.LikeComment(context.Background(), "tk-1", 7))
		require.Equal(t, http.MethodPost, captured.Method)
		require.Equal(t, "/studienkolleg/tk-1/comments/7/like", captured.URL.Path)

		require.NoError(t, client.UnlikeComment(context.Background(), "tk-1", 7))
	})

	t.Run("403 on a mutation is rewritten to the login message", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":403,"message":""}`))
		}))

		err := client.DeleteComment(context.Background(), "tk-1", 7)
		require.Error(t, err)
		require.True(t, api.IsAuthorization(err))
		require.EqualError(t, err, "You need to log in to perform this action.")
	})

	t.Run("401 on a mutation is rewritten too", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{}`))
		}))

		err := client.LikeComment(context.Background(), "tk-1", 7)
		require.Error(t, err)
		require.True(t, api.IsAuthorization(err))
	})
}

func TestClient_Health(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"UP","timestamp":"2026-01-01T00:00:00Z","service":"studienwege-api"}`))
	}))

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "UP", status.Status)
	require.Equal(t, "studienwege-api", status.Service)
}

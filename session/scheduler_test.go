package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/session"
	"github.com/studienwege/go-client/session/sessionfakes"
)

type schedulerConfig struct {
	leeway   time.Duration
	minDelay time.Duration
}

func (c schedulerConfig) GetRefreshLeeway() time.Duration   { return c.leeway }
func (c schedulerConfig) GetMinRefreshDelay() time.Duration { return c.minDelay }

func TestRefreshDelay(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	leeway := time.Minute
	minDelay := 5 * time.Second

	t.Run("fires one minute before expiry", func(t *testing.T) {
		expiresAt := now.Add(900 * time.Second)
		delay := session.RefreshDelay(expiresAt, now, leeway, minDelay)
		require.Equal(t, 840*time.Second, delay)
	})

	t.Run("never sooner than the floor", func(t *testing.T) {
		require.Equal(t, minDelay, session.RefreshDelay(now.Add(30*time.Second), now, leeway, minDelay))
		require.Equal(t, minDelay, session.RefreshDelay(now.Add(-time.Hour), now, leeway, minDelay))
	})

	t.Run("stays inside the expected window", func(t *testing.T) {
		expiresAt := now.Add(900 * time.Second)
		delay := session.RefreshDelay(expiresAt, now, leeway, minDelay)
		fireAt := now.Add(delay)
		require.False(t, fireAt.Before(now.Add(839*time.Second)))
		require.False(t, fireAt.After(now.Add(840*time.Second)))
	})
}

func TestScheduler_Bootstrap(t *testing.T) {
	t.Run("attempts one refresh and tolerates its failure", func(t *testing.T) {
		authAPI := sessionfakes.NewFakeAuthAPI()
		authAPI.RefreshFn = func() (*api.AuthSession, error) { return nil, errors.New("no refresh cookie") }

		store, err := session.NewStore(authAPI)
		require.NoError(t, err)
		require.False(t, store.Initialized())

		ctx, cancel := context.WithCancel(context.Background())
		scheduler := session.NewScheduler(store, schedulerConfig{leeway: time.Minute, minDelay: 5 * time.Second})

		done := make(chan struct{})
		go func() {
			defer close(done)
			scheduler.Run(ctx)
		}()

		require.Eventually(t, func() bool { return store.Initialized() }, time.Second, 5*time.Millisecond)
		_, _, refreshCalls, _ := authAPI.Calls()
		require.Equal(t, 1, refreshCalls)
		require.False(t, store.IsAuthenticated(), "cold start without a cookie is a normal state")

		cancel()
		<-done
	})

	t.Run("skips the bootstrap once initialized", func(t *testing.T) {
		authAPI := sessionfakes.NewFakeAuthAPI()
		authAPI.LoginFn = func(string, string) (*api.LoginResult, error) {
			return &api.LoginResult{UserExists: true, AuthData: sessionPayload()}, nil
		}

		store, err := session.NewStore(authAPI)
		require.NoError(t, err)
		_, err = store.Login(context.Background(), "a@b.com", "pw")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		scheduler := session.NewScheduler(store, schedulerConfig{leeway: time.Minute, minDelay: 5 * time.Second})

		done := make(chan struct{})
		go func() {
			defer close(done)
			scheduler.Run(ctx)
		}()

		time.Sleep(50 * time.Millisecond)
		_, _, refreshCalls, _ := authAPI.Calls()
		require.Zero(t, refreshCalls)

		cancel()
		<-done
	})
}

func TestScheduler_ProactiveRefresh(t *testing.T) {
	t.Run("fires before expiry and swallows failures", func(t *testing.T) {
		authAPI := sessionfakes.NewFakeAuthAPI()
		authAPI.LoginFn = func(string, string) (*api.LoginResult, error) {
			payload := sessionPayload()
			payload.ExpiresIn = 1 // expires in one second
			return &api.LoginResult{UserExists: true, AuthData: payload}, nil
		}
		authAPI.RefreshFn = func() (*api.AuthSession, error) {
			payload := sessionPayload()
			payload.ExpiresIn = 3600
			return payload, nil
		}

		store, err := session.NewStore(authAPI)
		require.NoError(t, err)
		_, err = store.Login(context.Background(), "a@b.com", "pw")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		// leeway just under the TTL so the refresh lands ~50ms in.
		scheduler := session.NewScheduler(store, schedulerConfig{leeway: 950 * time.Millisecond, minDelay: 10 * time.Millisecond})

		done := make(chan struct{})
		go func() {
			defer close(done)
			scheduler.Run(ctx)
		}()

		require.Eventually(t, func() bool {
			_, _, refreshCalls, _ := authAPI.Calls()
			return refreshCalls == 1
		}, time.Second, 5*time.Millisecond)

		cancel()
		<-done
	})

	t.Run("logout cancels the pending refresh", func(t *testing.T) {
		authAPI := sessionfakes.NewFakeAuthAPI()
		authAPI.LoginFn = func(string, string) (*api.LoginResult, error) {
			payload := sessionPayload()
			payload.ExpiresIn = 1
			return &api.LoginResult{UserExists: true, AuthData: payload}, nil
		}

		store, err := session.NewStore(authAPI)
		require.NoError(t, err)
		_, err = store.Login(context.Background(), "a@b.com", "pw")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		scheduler := session.NewScheduler(store, schedulerConfig{leeway: 800 * time.Millisecond, minDelay: 10 * time.Millisecond})

		done := make(chan struct{})
		go func() {
			defer close(done)
			scheduler.Run(ctx)
		}()

		require.NoError(t, store.Logout(context.Background()))

		time.Sleep(400 * time.Millisecond)
		_, _, refreshCalls, _ := authAPI.Calls()
		require.Zero(t, refreshCalls, "no refresh may fire against a cleared session")

		cancel()
		<-done
	})
}

// Package session owns the client-side session lifecycle: login, register,
// logout, refresh, persistence across restarts, and the proactive refresh
// scheduler. The access token only ever lives in process memory; the refresh
// token stays in the server-set HttpOnly cookie.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/internal/errors"
	"github.com/studienwege/go-client/sanitize"
)

// AuthAPI is the slice of the API client the store drives.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, data api.RegisterRequest, passwordToken string) error
	Refresh(ctx context.Context) (*api.AuthSession, error)
	Logout(ctx context.Context) error
}

var _ AuthAPI = (*api.Client)(nil)

// Store holds the current session state and mediates every mutation of it.
// It implements api.TokenProvider so the HTTP client can attach the bearer
// header on authenticated calls.
type Store struct {
	api       AuthAPI
	snapshots SnapshotRepo
	logger    zerolog.Logger
	nowTime   func() time.Time

	mu              sync.Mutex
	user            *api.User
	isAuthenticated bool
	accessToken     string
	expiresAt       time.Time
	initialized     bool
	loading         bool
	generation      uint64
	subscribers     []chan struct{}
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithSnapshots sets the durable snapshot repository. Without it the session
// only lives for the lifetime of the process.
func WithSnapshots(snapshots SnapshotRepo) StoreOption {
	return func(s *Store) { s.snapshots = snapshots }
}

// WithLogger sets the store's logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) { s.nowTime = nowFunc }
}

// NewStore creates a Store and rehydrates any persisted snapshot. The
// rehydrated state is never trusted blindly: initialized stays false until
// the first refresh attempt settles, so the bootstrap flow revalidates it
// against the live refresh cookie.
func NewStore(authAPI AuthAPI, options ...StoreOption) (*Store, error) {
	if authAPI == nil {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "[NewStore] auth API is required")
	}

	s := &Store{
		api:     authAPI,
		logger:  zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	s.rehydrate()
	return s, nil
}

func (s *Store) rehydrate() {
	if s.snapshots == nil {
		return
	}
	snapshot, err := s.snapshots.Load()
	if err != nil {
		if !errors.Is(err, errors.ErrNoSnapshot) {
			s.logger.Warn().Err(err).Msg("loading session snapshot failed")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snapshot.User
	s.isAuthenticated = snapshot.IsAuthenticated && snapshot.User != nil
	if s.isAuthenticated {
		s.expiresAt = snapshot.ExpiresAt
	}
	s.initialized = false
}

// User returns the authenticated user, or nil.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a valid session is believed active.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// Initialized reports whether the first bootstrap or refresh attempt has
// completed, success or failure.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// AccessToken implements api.TokenProvider.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// SessionExpiry returns the access-token expiry. ok is false while no user
// or no expiry is known.
func (s *Store) SessionExpiry() (expiresAt time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt, s.user != nil && !s.expiresAt.IsZero()
}

// HasRole reports whether the authenticated user carries the given role.
func (s *Store) HasRole(role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isAuthenticated || s.user == nil {
		return false
	}
	for _, r := range s.user.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Subscribe returns a channel that receives a signal after every state
// change. The channel is buffered; slow consumers coalesce signals.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// Login authenticates against the platform. When the email is unknown the
// discriminated result carries pre-registration data and no session is
// established; the caller continues with Register, forwarding the password
// continuation token.
func (s *Store) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if err := s.beginOperation(); err != nil {
		return nil, err
	}
	defer s.endOperation()

	result, err := s.api.Login(ctx, sanitize.Email(email), password)
	if err != nil {
		return nil, err
	}

	if !result.UserExists {
		return result, nil
	}
	if result.AuthData == nil || result.AuthData.User == nil {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "login response carried no session")
	}

	s.establishSession(result.AuthData)
	s.logger.Info().Str("email", result.AuthData.User.Email).Msg("logged in")
	return result, nil
}

// Register creates an account. All string fields except the password are
// sanitized before transmission. No session is established; the email
// verification gate applies. Field-level validation errors pass through
// unmodified.
func (s *Store) Register(ctx context.Context, data api.RegisterRequest, passwordToken string) error {
	if err := validateRegistration(data); err != nil {
		return err
	}
	if err := s.beginOperation(); err != nil {
		return err
	}
	defer s.endOperation()

	sanitized := api.RegisterRequest{
		Email:     sanitize.Email(data.Email),
		Password:  data.Password,
		FirstName: sanitize.Input(data.FirstName),
		LastName:  sanitize.Input(data.LastName),
	}
	return s.api.Register(ctx, sanitized, passwordToken)
}

// RefreshToken exchanges the HttpOnly refresh cookie for a fresh session.
// On failure the local session is cleared, the server is asked (best effort)
// to invalidate its side when a session had been believed active, and the
// triggering error is rethrown. initialized becomes true either way.
func (s *Store) RefreshToken(ctx context.Context) error {
	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
		s.notify()
	}()

	session, err := s.api.Refresh(ctx)
	if err == nil && (session == nil || session.User == nil) {
		err = errors.Wrapf(errors.ErrRequestFailed, "refresh response carried no session")
	}

	if err == nil {
		s.mu.Lock()
		if s.generation != generation {
			// A logout settled while the refresh was in flight; its final
			// state is authoritative.
			s.mu.Unlock()
			return nil
		}
		s.setSessionLocked(session)
		s.mu.Unlock()
		s.persist()
		s.notify()
		return nil
	}

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		return err
	}
	wasAuthenticated := s.isAuthenticated
	s.clearSessionLocked()
	s.mu.Unlock()
	s.persist()
	s.notify()

	if wasAuthenticated {
		if logoutErr := s.api.Logout(ctx); logoutErr != nil {
			s.logger.Debug().Err(logoutErr).Msg("server-side logout after failed refresh did not succeed")
		}
	}
	return err
}

// Logout invalidates the session. The server call is best effort; local
// state is cleared unconditionally and any refresh still in flight becomes a
// no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()

	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("server logout failed")
	}

	s.mu.Lock()
	s.clearSessionLocked()
	s.initialized = true
	s.mu.Unlock()
	s.persist()
	s.notify()

	s.logger.Info().Msg("logged out")
	return nil
}

// SetUser directly replaces the current user. Passing nil clears the
// session-derived fields so the store's invariants keep holding.
func (s *Store) SetUser(user *api.User) {
	s.mu.Lock()
	s.user = user
	s.isAuthenticated = user != nil
	if user == nil {
		s.accessToken = ""
		s.expiresAt = time.Time{}
	}
	s.mu.Unlock()
	s.persist()
	s.notify()
}

func (s *Store) establishSession(session *api.AuthSession) {
	s.mu.Lock()
	s.setSessionLocked(session)
	s.mu.Unlock()
	s.persist()
	s.notify()
}

func (s *Store) setSessionLocked(session *api.AuthSession) {
	user := session.User
	if len(user.Roles) == 0 {
		user.Roles = TokenRoles(session.AccessToken)
	}
	s.user = user
	s.isAuthenticated = true
	s.accessToken = session.AccessToken
	s.expiresAt = sessionExpiry(session, s.nowTime())
	s.initialized = true
}

func (s *Store) clearSessionLocked() {
	s.user = nil
	s.isAuthenticated = false
	s.accessToken = ""
	s.expiresAt = time.Time{}
}

func (s *Store) beginOperation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return errors.ErrOperationInFlight
	}
	s.loading = true
	return nil
}

func (s *Store) endOperation() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// persist writes the durable subset of the state. Persistence failures are
// logged, not propagated: the in-memory session stays usable.
func (s *Store) persist() {
	if s.snapshots == nil {
		return
	}

	s.mu.Lock()
	snapshot := &Snapshot{
		User:            s.user,
		IsAuthenticated: s.isAuthenticated,
		ExpiresAt:       s.expiresAt,
		SavedAt:         s.nowTime(),
	}
	s.mu.Unlock()

	if err := s.snapshots.Save(snapshot); err != nil {
		s.logger.Warn().Err(err).Msg("persisting session snapshot failed")
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subscribers := s.subscribers
	s.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

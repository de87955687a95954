package sessionfakes

import (
	"context"
	"errors"
	"sync"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/session"
)

var _ session.AuthAPI = (*FakeAuthAPI)(nil)

// FakeAuthAPI is a programmable stand-in for the auth slice of the API
// client. Unset funcs fail for calls that must return data and succeed for
// fire-and-forget calls.
type FakeAuthAPI struct {
	lock sync.Mutex

	LoginFn    func(email, password string) (*api.LoginResult, error)
	RegisterFn func(data api.RegisterRequest, passwordToken string) error
	RefreshFn  func() (*api.AuthSession, error)
	LogoutFn   func() error

	LoginCalls    int
	RegisterCalls int
	RefreshCalls  int
	LogoutCalls   int

	LastLoginEmail    string
	LastLoginPassword string
	LastRegister      api.RegisterRequest
	LastPasswordToken string
}

func NewFakeAuthAPI() *FakeAuthAPI {
	return &FakeAuthAPI{}
}

func (f *FakeAuthAPI) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	f.lock.Lock()
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	fn := f.LoginFn
	f.lock.Unlock()

	if fn == nil {
		return nil, errors.New("login not stubbed")
	}
	return fn(email, password)
}

func (f *FakeAuthAPI) Register(_ context.Context, data api.RegisterRequest, passwordToken string) error {
	f.lock.Lock()
	f.RegisterCalls++
	f.LastRegister = data
	f.LastPasswordToken = passwordToken
	fn := f.RegisterFn
	f.lock.Unlock()

	if fn == nil {
		return nil
	}
	return fn(data, passwordToken)
}

func (f *FakeAuthAPI) Refresh(_ context.Context) (*api.AuthSession, error) {
	f.lock.Lock()
	f.RefreshCalls++
	fn := f.RefreshFn
	f.lock.Unlock()

	if fn == nil {
		return nil, errors.New("refresh not stubbed")
	}
	return fn()
}

func (f *FakeAuthAPI) Logout(_ context.Context) error {
	f.lock.Lock()
	f.LogoutCalls++
	fn := f.LogoutFn
	f.lock.Unlock()

	if fn == nil {
		return nil
	}
	return fn()
}

// Calls returns the call counters under the fake's lock.
func (f *FakeAuthAPI) Calls() (login, register, refresh, logout int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.LoginCalls, f.RegisterCalls, f.RefreshCalls, f.LogoutCalls
}

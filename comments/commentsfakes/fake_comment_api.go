package commentsfakes

import (
	"context"
	"errors"
	"sync"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/comments"
)

var _ comments.API = (*FakeCommentAPI)(nil)

// FakeCommentAPI is a programmable stand-in for the comment slice of the API
// client, tracking call counts so tests can assert that a guard prevented a
// network call entirely.
type FakeCommentAPI struct {
	lock sync.Mutex

	ListFn   func(resourceID string) ([]api.Comment, error)
	CreateFn func(data api.CreateCommentRequest) (*api.Comment, error)
	UpdateFn func(resourceID string, commentID int64, data api.UpdateCommentRequest) (*api.Comment, error)
	DeleteFn func(resourceID string, commentID int64) error
	LikeFn   func(resourceID string, commentID int64) error
	UnlikeFn func(resourceID string, commentID int64) error

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
	LikeCalls   int
	UnlikeCalls int
}

func NewFakeCommentAPI() *FakeCommentAPI {
	return &FakeCommentAPI{}
}

func (f *FakeCommentAPI) ListComments(_ context.Context, resourceID string) ([]api.Comment, error) {
	f.lock.Lock()
	f.ListCalls++
	fn := f.ListFn
	f.lock.Unlock()

	if fn == nil {
		return nil, errors.New("list not stubbed")
	}
	return fn(resourceID)
}

func (f *FakeCommentAPI) CreateComment(_ context.Context, data api.CreateCommentRequest) (*api.Comment, error) {
	f.lock.Lock()
	f.CreateCalls++
	fn := f.CreateFn
	f.lock.Unlock()

	if fn == nil {
		return nil, errors.New("create not stubbed")
	}
	return fn(data)
}

func (f *FakeCommentAPI) UpdateComment(_ context.Context, resourceID string, commentID int64, data api.UpdateCommentRequest) (*api.Comment, error) {
	f.lock.Lock()
	f.UpdateCalls++
	fn := f.UpdateFn
	f.lock.Unlock()

	if fn == nil {
		return nil, errors.New("update not stubbed")
	}
	return fn(resourceID, commentID, data)
}

func (f *FakeCommentAPI) DeleteComment(_ context.Context, resourceID string, commentID int64) error {
	f.lock.Lock()
	f.DeleteCalls++
	fn := f.DeleteFn
	f.lock.Unlock()

	if fn == nil {
		return nil
	}
	return fn(resourceID, commentID)
}

func (f *FakeCommentAPI) LikeComment(_ context.Context, resourceID string, commentID int64) error {
	f.lock.Lock()
	f.LikeCalls++
	fn := f.LikeFn
	f.lock.Unlock()

	if fn == nil {
		return nil
	}
	return fn(resourceID, commentID)
}

func (f *FakeCommentAPI) UnlikeComment(_ context.Context, resourceID string, commentID int64) error {
	f.lock.Lock()
	f.UnlikeCalls++
	fn := f.UnlikeFn
	f.lock.Unlock()

	if fn == nil {
		return nil
	}
	return fn(resourceID, commentID)
}

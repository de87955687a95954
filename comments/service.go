// Package comments maintains the client-side comment list for one resource:
// fetch, create, update, delete with a destructive-action guard, and a like
// toggle applied optimistically and rolled back on failure.
package comments

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/internal/errors"
)

// API is the slice of the API client the service drives.
type API interface {
	ListComments(ctx context.Context, resourceID string) ([]api.Comment, error)
	CreateComment(ctx context.Context, data api.CreateCommentRequest) (*api.Comment, error)
	UpdateComment(ctx context.Context, resourceID string, commentID int64, data api.UpdateCommentRequest) (*api.Comment, error)
	DeleteComment(ctx context.Context, resourceID string, commentID int64) error
	LikeComment(ctx context.Context, resourceID string, commentID int64) error
	UnlikeComment(ctx context.Context, resourceID string, commentID int64) error
}

var _ API = (*api.Client)(nil)

// ConfirmFunc is the blocking destructive-action guard run before a delete
// reaches the network. Returning false aborts the delete.
type ConfirmFunc func(ctx context.Context, comment api.Comment) bool

// Notifier surfaces non-blocking user-facing notices (the toast analog).
type Notifier func(message string)

// Deps holds all dependencies for the Service.
type Deps struct {
	API             API
	IsAuthenticated func() bool // viewer's authentication probe
	Confirm         ConfirmFunc
	Notify          Notifier // optional
}

// Service owns the comment list of a single resource.
type Service struct {
	resourceID string
	deps       Deps
	logger     zerolog.Logger

	mu       sync.Mutex
	comments []api.Comment
	inflight map[int64]bool // per-comment like toggles currently on the wire
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithServiceLogger sets the service's logger.
func WithServiceLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// NewService validates the dependency bundle and returns a Service for the
// given resource.
func NewService(resourceID string, deps Deps, options ...ServiceOption) (*Service, error) {
	if resourceID == "" {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "[NewService] resource id is required")
	}
	if deps.API == nil {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "[NewService] API is required")
	}
	if deps.IsAuthenticated == nil {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "[NewService] authentication probe is required")
	}
	if deps.Confirm == nil {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "[NewService] confirm guard is required")
	}
	if deps.Notify == nil {
		deps.Notify = func(string) {}
	}

	s := &Service{
		resourceID: resourceID,
		deps:       deps,
		logger:     zerolog.Nop(),
		inflight:   make(map[int64]bool),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Load fetches the comment list in server order. On failure the list is left
// empty and the error is surfaced for inline display.
func (s *Service) Load(ctx context.Context) error {
	fetched, err := s.deps.API.ListComments(ctx, s.resourceID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.comments = nil
		return err
	}
	s.comments = fetched
	return nil
}

// Comments returns a copy of the current list.
func (s *Service) Comments() []api.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]api.Comment, len(s.comments))
	copy(copied, s.comments)
	return copied
}

// Count returns the number of comments currently held.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// Create validates and sanitizes the draft, posts it and prepends the server
// assigned comment so the list stays newest-first.
func (s *Service) Create(ctx context.Context, title, content string) (*api.Comment, error) {
	draft, err := validateDraft(title, content)
	if err != nil {
		return nil, err
	}

	created, err := s.deps.API.CreateComment(ctx, api.CreateCommentRequest{
		StudienkollegID: s.resourceID,
		Title:           draft.title,
		Content:         draft.content,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.comments = append([]api.Comment{*created}, s.comments...)
	s.mu.Unlock()
	return created, nil
}

// Update validates the draft and replaces the matching list entry with the
// server's version. Likes, authorship and createdAt come back untouched.
func (s *Service) Update(ctx context.Context, commentID int64, title, content string) (*api.Comment, error) {
	draft, err := validateDraft(title, content)
	if err != nil {
		return nil, err
	}

	updated, err := s.deps.API.UpdateComment(ctx, s.resourceID, commentID, api.UpdateCommentRequest{
		Title:   draft.title,
		Content: draft.content,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if idx := s.indexLocked(commentID); idx >= 0 {
		s.comments[idx] = *updated
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete runs the confirmation guard, removes the comment server-side and
// drops exactly the targeted entry from the list.
func (s *Service) Delete(ctx context.Context, commentID int64) error {
	s.mu.Lock()
	idx := s.indexLocked(commentID)
	if idx < 0 {
		s.mu.Unlock()
		return errors.ErrCommentNotFound
	}
	target := s.comments[idx]
	s.mu.Unlock()

	if !s.deps.Confirm(ctx, target) {
		return errors.ErrDeleteCancelled
	}

	if err := s.deps.API.DeleteComment(ctx, s.resourceID, commentID); err != nil {
		return err
	}

	s.mu.Lock()
	if idx := s.indexLocked(commentID); idx >= 0 {
		s.comments = append(s.comments[:idx], s.comments[idx+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// ToggleLike flips the viewer's like on a comment: the list entry changes
// immediately and is reverted to its exact pre-toggle values if the call
// fails. Re-entrant toggles on the same comment are rejected while one is on
// the wire; unauthenticated viewers get a notification and no network call.
func (s *Service) ToggleLike(ctx context.Context, commentID int64) error {
	if !s.deps.IsAuthenticated() {
		s.deps.Notify("Please login to like comments")
		return errors.ErrLoginRequired
	}

	s.mu.Lock()
	if s.inflight[commentID] {
		s.mu.Unlock()
		return errors.ErrLikeInFlight
	}
	idx := s.indexLocked(commentID)
	if idx < 0 {
		s.mu.Unlock()
		return errors.ErrCommentNotFound
	}
	toggle := newLikeToggle(&s.comments[idx])
	toggle.apply(&s.comments[idx])
	s.inflight[commentID] = true
	s.mu.Unlock()

	var err error
	if toggle.liked {
		err = s.deps.API.LikeComment(ctx, s.resourceID, commentID)
	} else {
		err = s.deps.API.UnlikeComment(ctx, s.resourceID, commentID)
	}

	s.mu.Lock()
	delete(s.inflight, commentID)
	if err != nil {
		if idx := s.indexLocked(commentID); idx >= 0 {
			toggle.revert(&s.comments[idx])
		}
	}
	s.mu.Unlock()

	if err != nil {
		// Silent rollback: worth a log line, not a blocking error state.
		s.logger.Debug().Err(err).Int64("comment_id", commentID).Msg("like toggle failed, rolled back")
		return err
	}
	return nil
}

// indexLocked returns the position of a comment id, or -1. Callers hold mu.
func (s *Service) indexLocked(commentID int64) int {
	for i := range s.comments {
		if s.comments[i].ID == commentID {
			return i
		}
	}
	return -1
}

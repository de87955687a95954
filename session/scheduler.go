package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SchedulerConfig is the slice of configuration the scheduler needs.
type SchedulerConfig interface {
	GetRefreshLeeway() time.Duration
	GetMinRefreshDelay() time.Duration
}

// Scheduler keeps the session alive: it bootstraps the session once at
// startup and, while a session with a known expiry is active, keeps exactly
// one proactive refresh pending, rescheduled whenever the session changes.
type Scheduler struct {
	store    *Store
	leeway   time.Duration
	minDelay time.Duration
	logger   zerolog.Logger
	nowTime  func() time.Time
}

// SchedulerOption defines a function type to modify the Scheduler instance.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the scheduler's logger.
func WithSchedulerLogger(logger zerolog.Logger) SchedulerOption {
	return func(sc *Scheduler) { sc.logger = logger }
}

// WithSchedulerNowTime sets the now time function (primarily for testing).
func WithSchedulerNowTime(nowFunc func() time.Time) SchedulerOption {
	return func(sc *Scheduler) { sc.nowTime = nowFunc }
}

// NewScheduler wires a Scheduler to a store.
func NewScheduler(store *Store, cfg SchedulerConfig, options ...SchedulerOption) *Scheduler {
	sc := &Scheduler{
		store:    store,
		leeway:   cfg.GetRefreshLeeway(),
		minDelay: cfg.GetMinRefreshDelay(),
		logger:   zerolog.Nop(),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(sc)
	}
	return sc
}

// RefreshDelay computes how long to wait before the proactive refresh:
// leeway before expiry, but never sooner than minDelay from now.
func RefreshDelay(expiresAt, now time.Time, leeway, minDelay time.Duration) time.Duration {
	delay := expiresAt.Sub(now) - leeway
	if delay < minDelay {
		return minDelay
	}
	return delay
}

// Run blocks until ctx is cancelled. The bootstrap refresh failure is
// swallowed: the absence of a refresh cookie at cold start is a normal,
// non-error state. Proactive refresh failures are swallowed too — the
// store's own failure path already cleared the session.
func (sc *Scheduler) Run(ctx context.Context) {
	if !sc.store.Initialized() {
		if err := sc.store.RefreshToken(ctx); err != nil {
			sc.logger.Debug().Err(err).Msg("bootstrap refresh failed; starting without a session")
		}
	}

	changes := sc.store.Subscribe()

	for {
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		if expiresAt, ok := sc.store.SessionExpiry(); ok {
			delay := RefreshDelay(expiresAt, sc.nowTime(), sc.leeway, sc.minDelay)
			timer = time.NewTimer(delay)
			timerC = timer.C
			sc.logger.Debug().Dur("delay", delay).Time("expires_at", expiresAt).Msg("proactive refresh scheduled")
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-changes:
			// Scheduling inputs changed: drop the pending timer and
			// recompute, so at most one refresh is ever pending.
			if timer != nil {
				timer.Stop()
			}
		case <-timerC:
			if err := sc.store.RefreshToken(ctx); err != nil {
				sc.logger.Debug().Err(err).Msg("proactive refresh failed")
			}
		}
	}
}

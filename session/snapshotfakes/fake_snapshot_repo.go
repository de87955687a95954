package snapshotfakes

import (
	"sync"

	"github.com/studienwege/go-client/internal/errors"
	"github.com/studienwege/go-client/session"
)

var _ session.SnapshotRepo = (*FakeSnapshotRepo)(nil)

type FakeSnapshotRepo struct {
	lock     sync.RWMutex
	snapshot *session.Snapshot

	SaveCalls int
	SaveErr   error
}

func NewFakeSnapshotRepo() *FakeSnapshotRepo {
	return &FakeSnapshotRepo{}
}

func (r *FakeSnapshotRepo) Save(snapshot *session.Snapshot) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.SaveCalls++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	copied := *snapshot
	r.snapshot = &copied
	return nil
}

func (r *FakeSnapshotRepo) Load() (*session.Snapshot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.snapshot == nil {
		return nil, errors.ErrNoSnapshot
	}
	copied := *r.snapshot
	return &copied, nil
}

func (r *FakeSnapshotRepo) Clear() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.snapshot = nil
	return nil
}

// Stored returns the last saved snapshot without the repo's copy semantics.
func (r *FakeSnapshotRepo) Stored() *session.Snapshot {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.snapshot
}

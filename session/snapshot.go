package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/internal/errors"
)

// Snapshot is the durable subset of the session state. The access token is
// deliberately absent: it only ever lives in memory.
type Snapshot struct {
	User            *api.User `json:"user,omitempty"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	ExpiresAt       time.Time `json:"expiresAt"`
	SavedAt         time.Time `json:"savedAt"`
}

// SnapshotRepo persists the session snapshot across restarts.
type SnapshotRepo interface {
	Save(snapshot *Snapshot) error
	Load() (*Snapshot, error) // errors.ErrNoSnapshot when nothing is stored
	Clear() error
}

// FileSnapshotRepo stores the snapshot as a JSON file. Writes go through a
// temp file and rename so a crash never leaves a half-written snapshot.
type FileSnapshotRepo struct {
	path string
}

var _ SnapshotRepo = (*FileSnapshotRepo)(nil)

// NewFileSnapshotRepo creates the data folder if needed and returns a repo
// writing to folder/filename.
func NewFileSnapshotRepo(folder, filename string) (*FileSnapshotRepo, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrapf(err, "creating snapshot folder")
	}
	return &FileSnapshotRepo{path: filepath.Join(folder, filename)}, nil
}

func (r *FileSnapshotRepo) Save(snapshot *Snapshot) error {
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding snapshot")
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return errors.Wrapf(err, "writing snapshot")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrapf(err, "replacing snapshot")
	}
	return nil
}

func (r *FileSnapshotRepo) Load() (*Snapshot, error) {
	payload, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrNoSnapshot
		}
		return nil, errors.Wrapf(err, "reading snapshot")
	}

	var snapshot Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "decoding snapshot")
	}
	return &snapshot, nil
}

func (r *FileSnapshotRepo) Clear() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing snapshot")
	}
	return nil
}

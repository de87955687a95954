package config

import (
	"strconv"
	"time"
)

type SessionConfig interface {
	GetRefreshLeeway() time.Duration
	GetMinRefreshDelay() time.Duration
	GetSnapshotFile() string
}

type Session struct{}

var _ SessionConfig = Session{}

// GetRefreshLeeway is how long before access-token expiry a proactive
// refresh is scheduled.
func (Session) GetRefreshLeeway() time.Duration {
	return durationSeconds("REFRESH_LEEWAY_SECONDS", 60)
}

// GetMinRefreshDelay is the floor for a scheduled refresh, so a refresh is
// never scheduled closer than this to the present.
func (Session) GetMinRefreshDelay() time.Duration {
	return durationSeconds("MIN_REFRESH_DELAY_SECONDS", 5)
}

func (Session) GetSnapshotFile() string {
	return GetEnv("SESSION_SNAPSHOT_FILE", "session.json")
}

func durationSeconds(envVar string, defaultSeconds int) time.Duration {
	seconds, err := strconv.Atoi(GetEnv(envVar, strconv.Itoa(defaultSeconds)))
	if err != nil || seconds <= 0 {
		seconds = defaultSeconds
	}
	return time.Duration(seconds) * time.Second
}

package config

import (
	"strconv"
	"time"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetRequestsPerSecond() float64
}

const (
	apiURLVar = "API_URL"

	// sameOrigin is a sentinel meaning "talk to the origin that serves the
	// application, under the relative /api prefix".
	sameOrigin = "SAME_ORIGIN"

	defaultBaseURL = "http://localhost:8080/api"
)

// configuredBaseURL can be injected at build time:
//
//	go build -ldflags "-X github.com/studienwege/go-client/internal/config.configuredBaseURL=https://api.studienwege.example"
var configuredBaseURL string

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL resolves the API base URL. Precedence: runtime environment
// override (with the SAME_ORIGIN sentinel mapping to a relative /api path),
// then the build-time configured URL, then the local default.
func (API) GetAPIBaseURL() string {
	if runtime := GetEnv(apiURLVar, ""); runtime != "" {
		if runtime == sameOrigin {
			return "/api"
		}
		return runtime
	}
	if configuredBaseURL != "" {
		return configuredBaseURL
	}
	return defaultBaseURL
}

func (API) GetRequestTimeout() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("REQUEST_TIMEOUT_SECONDS", "30"))
	if err != nil || seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

// GetRequestsPerSecond bounds the rate at which the client issues requests.
func (API) GetRequestsPerSecond() float64 {
	rps, err := strconv.ParseFloat(GetEnv("REQUESTS_PER_SECOND", "10"), 64)
	if err != nil || rps <= 0 {
		rps = 10
	}
	return rps
}

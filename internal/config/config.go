package config

import (
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetLanguage() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	API
	Session
}

// New loads a .env file when present and returns the environment backed
// configuration.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}

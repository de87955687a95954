package config

import "os"

const (
	appNameVar  = "APP_NAME"
	folderVar   = "FOLDER"
	languageVar = "LANGUAGE"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Studienwege Client")
}

// GetDataFolder returns the folder where the client persists its session
// snapshot and other durable state.
func (EnvVars) GetDataFolder() string {
	return GetEnv(folderVar, "./data")
}

// GetLanguage returns the selected display language. Consumed only by the
// translation layer.
func (EnvVars) GetLanguage() string {
	return GetEnv(languageVar, "en")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

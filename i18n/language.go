package i18n

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/studienwege/go-client/internal/errors"
)

// languageFile is the durable key holding the selected display language,
// separate from the session snapshot.
const languageFile = "language"

// SaveLanguage persists the selected display language in the data folder.
func SaveLanguage(folder, language string) error {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return errors.Wrapf(err, "creating language folder")
	}
	if err := os.WriteFile(filepath.Join(folder, languageFile), []byte(language), 0o600); err != nil {
		return errors.Wrapf(err, "writing language")
	}
	return nil
}

// LoadLanguage reads the persisted display language; "" when none is stored.
func LoadLanguage(folder string) string {
	payload, err := os.ReadFile(filepath.Join(folder, languageFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(payload))
}

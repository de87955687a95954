// Package i18n provides the injected translation capability consumed by
// presentation layers. Missing keys fall back to the key itself so a missing
// translation never blanks out the UI.
package i18n

import "strings"

// Bundle maps translation keys to templates for one language. Templates may
// reference parameters as {{name}}.
type Bundle map[string]string

// Translator resolves keys against per-language bundles with a fallback
// language and, ultimately, fallback to the key.
type Translator struct {
	language string
	fallback string
	bundles  map[string]Bundle
}

// NewTranslator creates a Translator for the given display language.
// English is the fallback language.
func NewTranslator(language string) *Translator {
	if language == "" {
		language = "en"
	}
	return &Translator{
		language: language,
		fallback: "en",
		bundles:  make(map[string]Bundle),
	}
}

// Register adds or replaces the bundle for a language.
func (t *Translator) Register(language string, bundle Bundle) {
	t.bundles[language] = bundle
}

// Language returns the selected display language.
func (t *Translator) Language() string { return t.language }

// SetLanguage switches the display language.
func (t *Translator) SetLanguage(language string) {
	if language != "" {
		t.language = language
	}
}

// T resolves a key, interpolating {{name}} parameters. Unknown keys are
// returned verbatim.
func (t *Translator) T(key string, params map[string]string) string {
	template, ok := t.lookup(t.language, key)
	if !ok {
		if template, ok = t.lookup(t.fallback, key); !ok {
			template = key
		}
	}

	for name, value := range params {
		template = strings.ReplaceAll(template, "{{"+name+"}}", value)
	}
	return template
}

func (t *Translator) lookup(language, key string) (string, bool) {
	bundle, ok := t.bundles[language]
	if !ok {
		return "", false
	}
	template, ok := bundle[key]
	return template, ok
}

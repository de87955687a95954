// Package sanitize cleans untrusted user input before it is sent to the
// platform API or rendered. All functions are pure, total and idempotent:
// sanitizing an already sanitized string returns it unchanged.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	quotedHandler  = regexp.MustCompile(`(?i)on\w+\s*=\s*["'][^"']*["']`)
	bareHandler    = regexp.MustCompile(`(?i)on\w+\s*=\s*[^\s>]*`)
	jsProtocolRe   = regexp.MustCompile(`(?i)javascript:`)
	dataHTMLRe     = regexp.MustCompile(`(?i)data:text/html`)
	dataProtocolRe = regexp.MustCompile(`(?i)data:`)
	emailInvalidRe = regexp.MustCompile(`[^a-z0-9@._+-]`)
	httpSchemeRe   = regexp.MustCompile(`(?i)^https?://`)
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Input strips potentially dangerous HTML and script content and trims
// surrounding whitespace. The empty string is returned for empty input.
func Input(input string) string {
	if input == "" {
		return ""
	}

	sanitized := strings.TrimSpace(input)

	sanitized = htmlTagRe.ReplaceAllString(sanitized, "")
	sanitized = scriptBlockRe.ReplaceAllString(sanitized, "")
	sanitized = quotedHandler.ReplaceAllString(sanitized, "")
	sanitized = bareHandler.ReplaceAllString(sanitized, "")
	sanitized = jsProtocolRe.ReplaceAllString(sanitized, "")
	sanitized = dataHTMLRe.ReplaceAllString(sanitized, "")

	return sanitized
}

// Email lowercases, trims and drops every character that is not valid in an
// email address.
func Email(email string) string {
	if email == "" {
		return ""
	}
	sanitized := strings.ToLower(strings.TrimSpace(email))
	return emailInvalidRe.ReplaceAllString(sanitized, "")
}

// DisplayText keeps basic formatting but removes scripts, event handlers and
// dangerous protocols. Intended for text that is rendered, not transmitted.
func DisplayText(text string) string {
	if text == "" {
		return ""
	}

	sanitized := strings.TrimSpace(text)

	sanitized = scriptBlockRe.ReplaceAllString(sanitized, "")
	sanitized = quotedHandler.ReplaceAllString(sanitized, "")
	sanitized = bareHandler.ReplaceAllString(sanitized, "")
	sanitized = jsProtocolRe.ReplaceAllString(sanitized, "")
	sanitized = dataHTMLRe.ReplaceAllString(sanitized, "")

	return sanitized
}

// EscapeHTML escapes HTML special characters for display contexts.
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}
	return htmlEscaper.Replace(text)
}

// URL accepts only http:// and https:// URLs; anything else collapses to the
// empty string. Residual dangerous scheme markers are stripped.
func URL(url string) string {
	if url == "" {
		return ""
	}

	sanitized := strings.TrimSpace(url)
	if !httpSchemeRe.MatchString(sanitized) {
		return ""
	}

	sanitized = jsProtocolRe.ReplaceAllString(sanitized, "")
	return dataProtocolRe.ReplaceAllString(sanitized, "")
}

// FormValues sanitizes every value of a form map, choosing the sanitizer by
// key: email-like keys use Email, URL-like keys use URL, everything else uses
// Input.
func FormValues(values map[string]string) map[string]string {
	sanitized := make(map[string]string, len(values))
	for key, value := range values {
		lowerKey := strings.ToLower(key)
		switch {
		case strings.Contains(lowerKey, "email"):
			sanitized[key] = Email(value)
		case strings.Contains(lowerKey, "url"):
			sanitized[key] = URL(value)
		default:
			sanitized[key] = Input(value)
		}
	}
	return sanitized
}

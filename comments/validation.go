package comments

import (
	"unicode/utf8"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/sanitize"
)

const (
	maxTitleLength   = 200
	maxContentLength = 5000
)

type draft struct {
	title   string
	content string
}

// validateDraft sanitizes and validates a comment draft. It runs before any
// network call so an oversized or empty draft never reaches the server.
func validateDraft(title, content string) (draft, error) {
	d := draft{
		title:   sanitize.Input(title),
		content: sanitize.Input(content),
	}

	fieldErrors := map[string]string{}
	switch {
	case d.title == "":
		fieldErrors["title"] = "Title is required"
	case utf8.RuneCountInString(d.title) > maxTitleLength:
		fieldErrors["title"] = "Title must be at most 200 characters"
	}
	switch {
	case d.content == "":
		fieldErrors["content"] = "Content is required"
	case utf8.RuneCountInString(d.content) > maxContentLength:
		fieldErrors["content"] = "Content must be at most 5000 characters"
	}

	if len(fieldErrors) > 0 {
		return draft{}, api.NewValidationError("Validation failed", fieldErrors)
	}
	return d, nil
}

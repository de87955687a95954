package session

import (
	"strings"

	"github.com/studienwege/go-client/api"
	"github.com/studienwege/go-client/sanitize"
)

const minPasswordLength = 8

// validateCredentials checks a login form before it reaches the network.
func validateCredentials(email, password string) error {
	fieldErrors := map[string]string{}
	checkEmail(email, fieldErrors)
	if password == "" {
		fieldErrors["password"] = "Password is required"
	}

	if len(fieldErrors) > 0 {
		return api.NewValidationError("Validation failed", fieldErrors)
	}
	return nil
}

// validateRegistration checks a registration form before it reaches the
// network. The server applies its own rules on top; this catches the cases a
// round trip cannot improve on.
func validateRegistration(data api.RegisterRequest) error {
	fieldErrors := map[string]string{}
	checkEmail(data.Email, fieldErrors)
	switch {
	case data.Password == "":
		fieldErrors["password"] = "Password is required"
	case len(data.Password) < minPasswordLength:
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if sanitize.Input(data.FirstName) == "" {
		fieldErrors["firstName"] = "First name is required"
	}
	if sanitize.Input(data.LastName) == "" {
		fieldErrors["lastName"] = "Last name is required"
	}

	if len(fieldErrors) > 0 {
		return api.NewValidationError("Validation failed", fieldErrors)
	}
	return nil
}

func checkEmail(email string, fieldErrors map[string]string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		fieldErrors["email"] = "Email is required"
	case !strings.Contains(email, "@") || !strings.Contains(email, "."):
		fieldErrors["email"] = "Please enter a valid email address"
	}
}

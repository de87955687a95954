package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	RegisterRequest
	PasswordToken string `json:"passwordToken,omitempty"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Login authenticates with email and password. The server answers with
// either a direct session payload or the discriminated {userExists, ...}
// envelope; both deployments are decoded into a LoginResult.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	env, err := c.request(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, true)
	if err != nil {
		return nil, err
	}

	var probe struct {
		UserExists  *bool  `json:"userExists"`
		AccessToken string `json:"accessToken"`
	}
	if err := decodeData(env, &probe); err != nil {
		return nil, err
	}

	if probe.UserExists == nil {
		// Direct session payload deployment.
		var session AuthSession
		if err := json.Unmarshal(env.Data, &session); err != nil {
			return nil, newRequestFailedError("Failed to parse server response", http.StatusOK)
		}
		return &LoginResult{UserExists: true, AuthData: &session}, nil
	}

	var result LoginResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, newRequestFailedError("Failed to parse server response", http.StatusOK)
	}
	return &result, nil
}

// Register creates a new account. No session is established: the email
// verification gate applies before the first login. passwordToken continues a
// login attempt that hit an unknown email; it is omitted when empty.
func (c *Client) Register(ctx context.Context, data RegisterRequest, passwordToken string) error {
	body := registerRequest{RegisterRequest: data, PasswordToken: passwordToken}
	_, err := c.request(ctx, http.MethodPost, "/auth/register", body, true)
	return err
}

// VerifyEmail redeems an email verification token and returns the server's
// message.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	endpoint := "/auth/verify-email?token=" + url.QueryEscape(token)
	env, err := c.request(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// RequestPasswordReset asks for a reset email. The server always answers
// success-shaped to avoid account enumeration.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.request(ctx, http.MethodPost, "/auth/password-reset/request", passwordResetRequest{Email: email}, true)
	return err
}

// ConfirmPasswordReset sets a new password using a reset token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	body := passwordResetConfirmRequest{Token: token, NewPassword: newPassword}
	_, err := c.request(ctx, http.MethodPost, "/auth/password-reset/confirm", body, true)
	return err
}

// Refresh exchanges the HttpOnly refresh cookie for a new session payload.
// skipAuth applies: the bearer token being refreshed must not gate the call.
func (c *Client) Refresh(ctx context.Context) (*AuthSession, error) {
	env, err := c.request(ctx, http.MethodPost, refreshEndpoint, nil, true)
	if err != nil {
		return nil, err
	}

	var session AuthSession
	if err := decodeData(env, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout asks the server to invalidate the refresh cookie and any
// server-side session state.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodPost, "/auth/logout", nil, false)
	return err
}

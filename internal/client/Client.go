package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/UserHive/go-user-server/internal/common"
	"github.com/UserHive/go-user-server/internal/log"
)

// APIError carries a failure envelope from the server. The Status keeps the
// non-standard token codes (499/498) visible to callers.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a typed client for the user API. The cookie jar carries the
// session token between calls, so a Login followed by Profile works the same
// way it does for a browser.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New creates a Client for the API at baseURL.
func New(baseURL string, logger *log.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		logger:  logger,
	}, nil
}

// do performs a JSON request and decodes the response envelope. Responses
// with an error status still return the decoded envelope alongside an
// APIError so callers can inspect the message.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*common.Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env common.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Infof("%s %s failed with %d: %s", method, path, resp.StatusCode, env.Message)
		return &env, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// ListUsers fetches all user records.
func (c *Client) ListUsers(ctx context.Context) ([]common.UserInfo, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/user/", nil)
	if err != nil {
		return nil, err
	}
	return env.Result, nil
}

// Register creates a new account and returns the created user, whose
// password field holds the stored hash.
func (c *Client) Register(ctx context.Context, email, password string) (*common.UserInfo, error) {
	body := map[string]interface{}{"user": common.RegisterRequest{Email: email, Password: password}}
	env, err := c.do(ctx, http.MethodPost, "/api/user/register", body)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]interface{}{"user": common.LoginRequest{Email: email, Password: password}}
	_, err := c.do(ctx, http.MethodPost, "/api/user/login", body)
	return err
}

// Logout clears the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/user/logout", nil)
	return err
}

// Profile returns the identity decoded from the current session token.
func (c *Client) Profile(ctx context.Context) (*common.UserInfo, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/user/profile", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateEmail changes the logged-in user's email.
func (c *Client) UpdateEmail(ctx context.Context, email string) (*common.UserInfo, error) {
	body := map[string]interface{}{"user": common.UpdateEmailRequest{Email: email}}
	env, err := c.do(ctx, http.MethodPut, "/api/user/update", body)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdatePassword changes the logged-in user's password.
func (c *Client) UpdatePassword(ctx context.Context, oldPassword, newPassword string) (*common.UserInfo, error) {
	body := map[string]interface{}{"user": common.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}}
	env, err := c.do(ctx, http.MethodPut, "/api/user/password/update", body)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// DeleteUser removes the account with the given id after the server verifies
// the password.
func (c *Client) DeleteUser(ctx context.Context, id, password string) (*common.UserInfo, error) {
	body := map[string]interface{}{"user": common.DeleteUserRequest{ID: id, Password: password}}
	env, err := c.do(ctx, http.MethodDelete, "/api/user/delete", body)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

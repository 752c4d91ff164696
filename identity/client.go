// Package identity is a thin HTTP client for the external GoTrue-compatible
// identity provider. The provider is an opaque collaborator: we verify tokens,
// exchange passwords for sessions and revoke sessions, nothing more.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the provider's view of an authenticated identity. Profile fields
// (name, role, phone, specialization) live in the free-form metadata map.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// Role returns the metadata role, defaulting to "patient" when absent.
func (u *User) Role() string {
	if r, ok := u.Metadata["role"].(string); ok && r != "" {
		return r
	}
	return "patient"
}

// Name returns the metadata name, falling back to the email address.
func (u *User) Name() string {
	if n, ok := u.Metadata["name"].(string); ok && n != "" {
		return n
	}
	return u.Email
}

func (u *User) Phone() string {
	s, _ := u.Metadata["phone"].(string)
	return s
}

func (u *User) Specialization() string {
	s, _ := u.Metadata["specialization"].(string)
	return s
}

// Session is an access/refresh token pair issued by the provider.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetUser verifies an access token with the provider and returns the identity
// it belongs to.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignUp registers a new identity with profile metadata attached.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*User, error) {
	body := map[string]any{"email": email, "password": password, "data": metadata}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/signup", body)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignOut revokes the session behind the given access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, nil)
}

// RefreshSession exchanges a refresh token for a fresh session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", body)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message   string `json:"msg"`
			ErrorDesc string `json:"error_description"`
		}
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.ErrorDesc
		}
		if msg == "" {
			msg = string(data)
		}
		return fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

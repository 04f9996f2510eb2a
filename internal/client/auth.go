package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthUser is the user object returned by the auth endpoints.
type AuthUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
	CreatedAt string `json:"createdAt"`
}

// AuthResult is a successful login: the bearer token plus the user it
// belongs to.
type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// authEnvelope handles both envelope variants, mirroring the summary
// endpoint: payload under "data" or at the top level.
type authEnvelope struct {
	Data  *AuthResult `json:"data"`
	Token string      `json:"token"`
	User  AuthUser    `json:"user"`
}

// Login authenticates with email and password and returns the session
// token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	respBody, err := c.do(ctx, "", http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return nil, err
	}

	var env authEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := AuthResult{Token: env.Token, User: env.User}
	if env.Data != nil {
		result = *env.Data
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrMalformedResponse)
	}

	return &result, nil
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
}

// Register creates a new account. Validation failures come back through the
// errors[].msg envelope and are surfaced joined into one message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Photo == "" {
		req.Photo = "default-avatar.png"
	}
	_, err := c.do(ctx, "", http.MethodPost, "/api/auth/register", req)
	return err
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"
	"net/http"

	"mlomp/internal/models"
)

// LoginResponse is returned by login and register.
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Auth wraps the /auth endpoints.
type Auth struct {
	c *Client
}

// NewAuth binds the auth endpoints to a client.
func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

// Login exchanges credentials for a token.
func (a *Auth) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, &Error{Resource: "auth", Op: "login", Message: GenericMessage, Err: err}
	}
	var out LoginResponse
	if err := a.c.do(ctx, request{resource: "auth", op: "login", method: http.MethodPost, path: "/auth/login", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its first token.
func (a *Auth) Register(ctx context.Context, in RegisterRequest) (*LoginResponse, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, &Error{Resource: "auth", Op: "register", Message: GenericMessage, Err: err}
	}
	var out LoginResponse
	if err := a.c.do(ctx, request{resource: "auth", op: "register", method: http.MethodPost, path: "/auth/register", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the user the token belongs to.
func (a *Auth) Profile(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	ctx = WithTokenContext(ctx, token)
	if err := a.c.do(ctx, request{resource: "auth", op: "profile", method: http.MethodGet, path: "/auth/profile"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken reports whether the API still accepts token. Any failure,
// including a network error, counts as invalid.
func (a *Auth) VerifyToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	_, err := a.Profile(ctx, token)
	return err == nil
}

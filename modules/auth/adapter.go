package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the interface other modules use to access auth functionality.
type AuthPort interface {
	Login(ctx context.Context, username, password string) (*Token, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Service implements AuthPort directly; the adapter below implements it over
// the service container for cross-module calls.
var _ AuthPort = (*Service)(nil)

// AuthAdapter implements AuthPort using the mono service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Login authenticates via the login service.
func (a *AuthAdapter) Login(ctx context.Context, username, password string) (*Token, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp LoginResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"login",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		// Service errors cross the container as opaque strings; map the
		// known credential failure back to its sentinel.
		if strings.Contains(err.Error(), ErrInvalidCredentials.Error()) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	return &Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	}, nil
}

// VerifyToken verifies a bearer token via the verify-token service.
func (a *AuthAdapter) VerifyToken(ctx context.Context, token string) (string, error) {
	req := VerifyTokenRequest{Token: token}
	var resp VerifyTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"verify-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", fmt.Errorf("verify-token request failed: %w", err)
	}

	if !resp.Valid {
		return "", ErrInvalidToken
	}

	return resp.Subject, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned when login credentials do not match.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// Token is an issued bearer token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// Service handles authentication: credential checking and token issue/verify.
// It is stateless and safe for concurrent use.
type Service struct {
	checker CredentialChecker
	tokens  *TokenManager
}

// NewService creates a new auth Service.
func NewService(checker CredentialChecker, tokens *TokenManager) *Service {
	return &Service{
		checker: checker,
		tokens:  tokens,
	}
}

// Login authenticates the credential pair and issues a bearer token.
// Returns ErrInvalidCredentials on any mismatch.
func (s *Service) Login(_ context.Context, username, password string) (*Token, error) {
	subject, ok := s.checker.Check(username, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   s.tokens.TokenTTL(),
	}, nil
}

// VerifyToken verifies a bearer token and returns the subject it carries.
// Returns ErrExpiredToken or ErrInvalidToken on failure.
func (s *Service) VerifyToken(_ context.Context, tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}

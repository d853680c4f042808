package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T, config Config) *Service {
	t.Helper()

	tokens, err := NewTokenManager(config)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return NewService(NewStaticCredentials(config.Username, config.Password), tokens)
}

func TestService_LoginAndVerifyRoundTrip(t *testing.T) {
	service := newTestService(t, testConfig())
	ctx := context.Background()

	token, err := service.Login(ctx, "user", "password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if token.AccessToken == "" {
		t.Error("Login() returned empty access token")
	}
	if token.TokenType != "bearer" {
		t.Errorf("TokenType = %q, want %q", token.TokenType, "bearer")
	}
	if token.ExpiresIn != int64(30*60) {
		t.Errorf("ExpiresIn = %v, want %v", token.ExpiresIn, 30*60)
	}

	subject, err := service.VerifyToken(ctx, token.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if subject != "user" {
		t.Errorf("subject = %q, want %q", subject, "user")
	}
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	service := newTestService(t, testConfig())

	_, err := service.Login(context.Background(), "wronguser", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestService_VerifyExpiredToken(t *testing.T) {
	config := testConfig()
	config.TokenTTL = -time.Minute

	service := newTestService(t, config)
	ctx := context.Background()

	token, err := service.Login(ctx, "user", "password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := service.VerifyToken(ctx, token.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("VerifyToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestService_VerifyGarbageToken(t *testing.T) {
	service := newTestService(t, testConfig())

	if _, err := service.VerifyToken(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

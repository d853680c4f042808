package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthModule provides authentication services. It owns no persistent state:
// tokens are signed and verified on the fly against the configured secret.
type AuthModule struct {
	config  Config
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule configured from the environment.
func NewModule() *AuthModule {
	return NewModuleWithConfig(loadConfig())
}

// NewModuleWithConfig creates a new AuthModule with an explicit configuration.
func NewModuleWithConfig(config Config) *AuthModule {
	return &AuthModule{
		config: config,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the auth module.
func (m *AuthModule) Start(_ context.Context) error {
	tokens, err := NewTokenManager(m.config)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	checker := NewStaticCredentials(m.config.Username, m.config.Password)
	m.service = NewService(checker, tokens)

	log.Printf("[auth] Module started (algorithm: %s, token ttl: %s)", m.config.Algorithm, m.config.TokenTTL)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"login",
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"verify-token",
		json.Unmarshal,
		json.Marshal,
		m.handleVerifyToken,
	); err != nil {
		return fmt.Errorf("failed to register verify-token service: %w", err)
	}

	log.Printf("[auth] Registered services: login, verify-token")
	return nil
}

// handleLogin handles login requests.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, err := m.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// handleVerifyToken handles token verification. Verification failures are
// returned in the response so callers see a uniform "invalid" outcome.
func (m *AuthModule) handleVerifyToken(ctx context.Context, req VerifyTokenRequest, _ *mono.Msg) (VerifyTokenResponse, error) {
	subject, err := m.service.VerifyToken(ctx, req.Token)
	if err != nil {
		return VerifyTokenResponse{
			Valid: false,
			Error: "invalid token",
		}, nil
	}

	return VerifyTokenResponse{
		Valid:   true,
		Subject: subject,
	}, nil
}

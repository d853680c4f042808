package auth

// LoginRequest is the request for the login service.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response for the login service.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// VerifyTokenRequest is the request for the verify-token service.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyTokenResponse is the response for the verify-token service.
// Verification failures are reported in the response, not as service errors.
type VerifyTokenResponse struct {
	Valid   bool   `json:"valid"`
	Subject string `json:"subject,omitempty"`
	Error   string `json:"error,omitempty"`
}

package api

// LoginRequest carries login credentials, accepted as JSON or form fields.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse is the successful login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateTaskBody is the request body for creating a task.
type CreateTaskBody struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// UpdateTaskBody is the request body for a partial task update. Absent
// fields stay untouched.
type UpdateTaskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ErrorResponse carries a fixed failure message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError describes a single field constraint violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-level validation detail.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

package dto

// ErrorResponse is the error body for all endpoints. Error carries server-side
// detail and is omitted for client-input failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// LoginRequest authenticates against the static user list.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the authenticated user's public identity.
type LoginResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

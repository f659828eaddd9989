package backend

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by login and register
type TokenResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
}

// MeResponse is returned by GET /api/auth/me
type MeResponse struct {
	ID                 ID     `json:"id" validate:"required"`
	Email              string `json:"email" validate:"required"`
	Name               string `json:"name"`
	Subscription       string `json:"subscription" validate:"omitempty,oneof=free pro premium"`
	SubscriptionExpiry string `json:"subscription_expiry,omitempty"`
}

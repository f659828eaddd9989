package backend

// STKPushRequest is the body of POST /api/payments/stk-push
type STKPushRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Amount int    `json:"amount" validate:"gt=0"`
	Plan   string `json:"plan" validate:"required,oneof=pro premium"`
}

// STKPushResponse reports whether the prompt was sent to the phone
type STKPushResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
}

// SubscriptionResponse is returned by GET /api/subscription
type SubscriptionResponse struct {
	Plan   string `json:"plan" validate:"required,oneof=free pro premium"`
	Expiry string `json:"expiry,omitempty"`
}

// ActivateSubscriptionResponse is returned by POST /api/subscription/activate
type ActivateSubscriptionResponse struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan"`
	Expiry  string `json:"expiry"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status    string `json:"status" validate:"required"`
	Timestamp string `json:"timestamp"`
}

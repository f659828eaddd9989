package api

import (
	"context"
	"net/http"

	"SocialFlow/internal/backend"
)

// call validates the request, performs it and validates the decoded response
func call[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (*T, error) {
	if body != nil {
		if err := backend.Validate(body); err != nil {
			return nil, err
		}
	}

	var out T
	if err := c.Request(ctx, method, path, body, &out, opts...); err != nil {
		return nil, err
	}
	if err := backend.Validate(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, req backend.LoginRequest) (*backend.TokenResponse, error) {
	return call[backend.TokenResponse](ctx, c, http.MethodPost, "/api/auth/login", &req)
}

// Register creates an account and returns its access token
func (c *Client) Register(ctx context.Context, req backend.RegisterRequest) (*backend.TokenResponse, error) {
	return call[backend.TokenResponse](ctx, c, http.MethodPost, "/api/auth/register", &req)
}

// Me returns the account behind the stored token
func (c *Client) Me(ctx context.Context) (*backend.MeResponse, error) {
	return call[backend.MeResponse](ctx, c, http.MethodGet, "/api/auth/me", nil)
}

// GenerateContent asks the backend for text variations
func (c *Client) GenerateContent(ctx context.Context, req backend.GenerateContentRequest) (*backend.GenerateContentResponse, error) {
	return call[backend.GenerateContentResponse](ctx, c, http.MethodPost, "/api/content/generate", &req)
}

// GenerateImages asks the backend for image URLs
func (c *Client) GenerateImages(ctx context.Context, req backend.GenerateImagesRequest) (*backend.GenerateImagesResponse, error) {
	return call[backend.GenerateImagesResponse](ctx, c, http.MethodPost, "/api/images/generate", &req)
}

// SaveBrand persists the brand profile
func (c *Client) SaveBrand(ctx context.Context, brand backend.BrandProfile) (*backend.SaveBrandResponse, error) {
	return call[backend.SaveBrandResponse](ctx, c, http.MethodPost, "/api/brand", &brand)
}

// Brand returns the saved brand profile, nil when none exists
func (c *Client) Brand(ctx context.Context) (*backend.BrandProfile, error) {
	var brand *backend.BrandProfile
	if err := c.Request(ctx, http.MethodGet, "/api/brand", nil, &brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Contents lists stored content, newest first
func (c *Client) Contents(ctx context.Context) ([]backend.Content, error) {
	var contents []backend.Content
	if err := c.Request(ctx, http.MethodGet, "/api/content", nil, &contents); err != nil {
		return nil, err
	}
	for i := range contents {
		if err := backend.Validate(&contents[i]); err != nil {
			return nil, err
		}
	}
	return contents, nil
}

// CreateContent stores a draft or scheduled piece of content
func (c *Client) CreateContent(ctx context.Context, req backend.CreateContentRequest) (*backend.CreateContentResponse, error) {
	return call[backend.CreateContentResponse](ctx, c, http.MethodPost, "/api/content", &req)
}

// STKPush starts an M-Pesa payment prompt on the given phone
func (c *Client) STKPush(ctx context.Context, req backend.STKPushRequest) (*backend.STKPushResponse, error) {
	return call[backend.STKPushResponse](ctx, c, http.MethodPost, "/api/payments/stk-push", &req)
}

// Subscription returns the current plan and expiry
func (c *Client) Subscription(ctx context.Context) (*backend.SubscriptionResponse, error) {
	return call[backend.SubscriptionResponse](ctx, c, http.MethodGet, "/api/subscription", nil)
}

// ActivateSubscription switches the account to plan
func (c *Client) ActivateSubscription(ctx context.Context, plan string) (*backend.ActivateSubscriptionResponse, error) {
	return call[backend.ActivateSubscriptionResponse](ctx, c, http.MethodPost, "/api/subscription/activate", nil,
		WithQuery("plan", plan))
}

// Health checks backend liveness
func (c *Client) Health(ctx context.Context) (*backend.HealthResponse, error) {
	return call[backend.HealthResponse](ctx, c, http.MethodGet, "/api/health", nil)
}

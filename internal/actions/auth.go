package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"SocialFlow/internal/api"
	"SocialFlow/internal/authgate"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/credentials"
	"SocialFlow/internal/session"
)

// RegisterForm is what the registration screen collects
type RegisterForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Auth signs users in and out
type Auth struct {
	client *api.Client
	creds  credentials.Store
	store  *session.Store
	nav    authgate.Navigator
	logger *slog.Logger

	login    Guard
	register Guard
}

// NewAuth creates the authentication actions
func NewAuth(client *api.Client, store *session.Store, nav authgate.Navigator, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{
		client: client,
		creds:  client.Credentials(),
		store:  store,
		nav:    nav,
		logger: logger,
	}
}

// Login exchanges credentials for a token, stores it and enters the dashboard
func (a *Auth) Login(ctx context.Context, email, password string) error {
	return a.login.Run(ctx, func(ctx context.Context) error {
		email = strings.TrimSpace(email)
		if email == "" || password == "" {
			return invalid("Email and password are required")
		}

		resp, err := a.client.Login(ctx, backend.LoginRequest{Email: email, Password: password})
		if err != nil {
			a.logger.Info("login failed", "error", err)
			return err
		}
		return a.enter(ctx, resp.AccessToken)
	})
}

// Register creates an account, stores its token and enters the dashboard
func (a *Auth) Register(ctx context.Context, form RegisterForm) error {
	return a.register.Run(ctx, func(ctx context.Context) error {
		if form.Password != form.ConfirmPassword {
			return invalid("Passwords do not match")
		}
		if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" ||
			strings.TrimSpace(form.Phone) == "" || form.Password == "" {
			return invalid("All fields are required")
		}

		resp, err := a.client.Register(ctx, backend.RegisterRequest{
			Name:     strings.TrimSpace(form.Name),
			Email:    strings.TrimSpace(form.Email),
			Phone:    strings.TrimSpace(form.Phone),
			Password: form.Password,
		})
		if err != nil {
			a.logger.Info("registration failed", "error", err)
			return serverError(err)
		}
		return a.enter(ctx, resp.AccessToken)
	})
}

// Logout forgets the token, resets the session and returns to login
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.creds.RemoveToken(ctx); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	a.store.Logout()
	a.logger.Info("logged out")
	a.nav.Navigate(ctx, authgate.RouteLogin)
	return nil
}

func (a *Auth) enter(ctx context.Context, token string) error {
	if err := a.creds.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	a.logger.Info("signed in")
	a.nav.Navigate(ctx, authgate.RouteDashboard)
	return nil
}

// serverError surfaces a non-JSON body, such as a proxy error page, as its
// leading text instead of the generic detail
func serverError(err error) error {
	var (
		reqErr *api.RequestError
		decErr *api.DecodeError
		status int
		body   []byte
	)
	switch {
	case errors.As(err, &reqErr):
		status, body = reqErr.Status, reqErr.Body
	case errors.As(err, &decErr):
		status, body = decErr.Status, decErr.Body
	default:
		return err
	}
	if json.Valid(body) {
		return err
	}
	text := []rune(strings.TrimSpace(string(body)))
	if len(text) > 100 {
		text = text[:100]
	}
	if len(text) == 0 {
		text = []rune("Invalid response")
	}
	return &api.RequestError{Status: status, Detail: "Server error: " + string(text), Body: body}
}

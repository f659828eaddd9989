package actions

import (
	"context"
	"errors"

	"SocialFlow/internal/api"
	"SocialFlow/internal/backend"
)

// ErrInFlight is returned when an action is triggered while it is still running
var ErrInFlight = errors.New("actions: request already in progress")

// ValidationError is a client-side check that failed before any request was sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Message converts any action error into the single line shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Detail
	}
	var schemaErr *backend.SchemaError
	if errors.As(err, &schemaErr) {
		return "Unexpected response from the server"
	}
	switch {
	case errors.Is(err, ErrInFlight):
		return "Please wait for the current request to finish"
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond"
	case api.IsTransport(err):
		return "Unable to reach the server. Check your connection and try again."
	}
	return err.Error()
}

package actions

import (
	"context"
	"log/slog"
	"time"

	"SocialFlow/internal/api"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/session"
)

// Library keeps the session's content list in step with the backend
type Library struct {
	client *api.Client
	store  *session.Store
	logger *slog.Logger

	add Guard
}

// NewLibrary creates the content list actions
func NewLibrary(client *api.Client, store *session.Store, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{client: client, store: store, logger: logger}
}

// Refresh replaces the session contents with the backend's list
func (l *Library) Refresh(ctx context.Context) ([]session.Content, error) {
	wire, err := l.client.Contents(ctx)
	if err != nil {
		return nil, err
	}
	contents := session.ContentsFromWire(wire)
	l.store.SetContents(contents)
	return contents, nil
}

// NewContent is a post to add to the calendar
type NewContent struct {
	Platform    string
	ContentType string
	Body        string
	ImageURL    string
	ScheduledAt *time.Time
}

// Add stores a post, scheduled when ScheduledAt is set, and refreshes the list
func (l *Library) Add(ctx context.Context, c NewContent) (string, error) {
	if c.Body == "" {
		return "", invalid("Post body is required")
	}
	req := backend.CreateContentRequest{
		Platform:    c.Platform,
		ContentType: c.ContentType,
		Body:        c.Body,
		ImageURL:    c.ImageURL,
		Status:      session.StatusDraft,
	}
	if req.Platform == "" {
		req.Platform = backend.Platforms[0]
	}
	if req.ContentType == "" {
		req.ContentType = backend.ContentTypes[0]
	}
	if c.ScheduledAt != nil {
		req.ScheduledDate = c.ScheduledAt.UTC().Format("2006-01-02T15:04:05")
		req.Status = session.StatusScheduled
	}

	var id string
	err := l.add.Run(ctx, func(ctx context.Context) error {
		resp, err := l.client.CreateContent(ctx, req)
		if err != nil {
			return err
		}
		id = resp.ID.String()
		return nil
	})
	if err != nil {
		l.logger.Warn("failed to add content", "error", err)
		return "", err
	}
	l.logger.Info("content added", "id", id, "status", req.Status)

	if _, err := l.Refresh(ctx); err != nil {
		l.logger.Warn("failed to refresh contents after add", "error", err)
	}
	return id, nil
}

package actions

import (
	"context"
	"log/slog"
	"strings"

	"SocialFlow/internal/api"
	"SocialFlow/internal/session"
)

// DefaultBrandColor is the first colour of a new brand profile
const DefaultBrandColor = "#6366F1"

// Industries offered by the settings form
var Industries = []string{
	"Technology", "Fashion", "Food & Beverage", "Health & Wellness", "Education",
	"Finance", "Real Estate", "Travel", "Entertainment", "Retail", "Other",
}

// DefaultBrand is the profile a new account starts editing from
func DefaultBrand() session.BrandProfile {
	return session.BrandProfile{
		Tone:        "Professional",
		BrandColors: []string{DefaultBrandColor},
	}
}

// Brand loads and saves the brand profile
type Brand struct {
	client *api.Client
	store  *session.Store
	logger *slog.Logger

	save Guard
}

// NewBrand creates the brand actions
func NewBrand(client *api.Client, store *session.Store, logger *slog.Logger) *Brand {
	if logger == nil {
		logger = slog.Default()
	}
	return &Brand{client: client, store: store, logger: logger}
}

// Load fetches the saved profile into the session; nil means none saved yet
func (b *Brand) Load(ctx context.Context) (*session.BrandProfile, error) {
	wire, err := b.client.Brand(ctx)
	if err != nil {
		return nil, err
	}
	brand := session.BrandFromWire(wire)
	b.store.SetBrand(brand)
	return brand, nil
}

// Save persists profile and mirrors it into the session
func (b *Brand) Save(ctx context.Context, profile session.BrandProfile) error {
	switch {
	case strings.TrimSpace(profile.BusinessName) == "":
		return invalid("Business name is required")
	case strings.TrimSpace(profile.Industry) == "":
		return invalid("Industry is required")
	case strings.TrimSpace(profile.Tone) == "":
		return invalid("Brand tone is required")
	}
	if len(profile.BrandColors) == 0 {
		profile.BrandColors = []string{DefaultBrandColor}
	}

	return b.save.Run(ctx, func(ctx context.Context) error {
		if _, err := b.client.SaveBrand(ctx, session.BrandToWire(profile)); err != nil {
			b.logger.Warn("failed to save brand", "error", err)
			return err
		}
		b.store.SetBrand(&profile)
		b.logger.Info("brand saved", "business_name", profile.BusinessName)
		return nil
	})
}

package session

import (
	"time"

	"SocialFlow/internal/backend"
)

// timeLayouts are the timestamp shapes the backend emits
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses a backend timestamp; naive timestamps are taken as UTC
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UserFromMe maps the /api/auth/me response
func UserFromMe(me *backend.MeResponse) *User {
	sub := me.Subscription
	if sub == "" {
		sub = SubscriptionFree
	}
	return &User{
		ID:                 me.ID.String(),
		Email:              me.Email,
		Name:               me.Name,
		Subscription:       sub,
		SubscriptionExpiry: me.SubscriptionExpiry,
	}
}

// BrandFromWire maps a backend brand profile
func BrandFromWire(b *backend.BrandProfile) *BrandProfile {
	if b == nil {
		return nil
	}
	return &BrandProfile{
		BusinessName:   b.BusinessName,
		Description:    b.Description,
		Industry:       b.Industry,
		Tone:           b.Tone,
		TargetAudience: b.TargetAudience,
		BrandColors:    append([]string(nil), b.BrandColors...),
	}
}

// BrandToWire maps a brand profile to its request body
func BrandToWire(b BrandProfile) backend.BrandProfile {
	return backend.BrandProfile{
		BusinessName:   b.BusinessName,
		Description:    b.Description,
		Industry:       b.Industry,
		Tone:           b.Tone,
		TargetAudience: b.TargetAudience,
		BrandColors:    append(backend.ColorList(nil), b.BrandColors...),
	}
}

// ContentFromWire maps a backend content row
func ContentFromWire(c backend.Content) Content {
	out := Content{
		ID:          c.ID.String(),
		Platform:    c.Platform,
		ContentType: c.ContentType,
		Body:        c.Body,
		ImageURL:    c.ImageURL,
		Status:      c.Status,
	}
	if out.Status == "" {
		out.Status = StatusDraft
	}
	if t, ok := ParseTime(c.ScheduledDate); ok {
		out.ScheduledDate = &t
	}
	if t, ok := ParseTime(c.CreatedAt); ok {
		out.CreatedAt = t
	}
	return out
}

// ContentsFromWire maps a list of backend content rows
func ContentsFromWire(cs []backend.Content) []Content {
	out := make([]Content, 0, len(cs))
	for _, c := range cs {
		out = append(out, ContentFromWire(c))
	}
	return out
}

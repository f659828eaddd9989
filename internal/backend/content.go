package backend

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Platforms, content types and tones offered by the generator
var (
	Platforms    = []string{"instagram", "twitter", "linkedin", "facebook"}
	ContentTypes = []string{"post", "caption", "story", "thread"}
	Tones        = []string{"Professional", "Casual", "Humorous", "Inspirational", "Technical", "Friendly"}
	ImageStyles  = []string{"modern", "vintage", "minimal", "bold", "nature", "tech"}
)

// GenerateContentRequest is the body of POST /api/content/generate
type GenerateContentRequest struct {
	Platform    string `json:"platform" validate:"required,oneof=instagram twitter linkedin facebook"`
	ContentType string `json:"content_type" validate:"required,oneof=post caption story thread"`
	Tone        string `json:"tone" validate:"required"`
	Topic       string `json:"topic" validate:"required"`
}

// GenerateContentResponse holds generated text variations
type GenerateContentResponse struct {
	Content []string `json:"content" validate:"required,dive,required"`
}

// GenerateImagesRequest is the body of POST /api/images/generate
type GenerateImagesRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Style  string `json:"style" validate:"required,oneof=modern vintage minimal bold nature tech"`
}

// GenerateImagesResponse holds generated image URLs
type GenerateImagesResponse struct {
	Images []string `json:"images" validate:"required,dive,required"`
}

// Content is one stored piece of content
type Content struct {
	ID            ID     `json:"id" validate:"required"`
	Platform      string `json:"platform"`
	ContentType   string `json:"content_type"`
	Body          string `json:"body"`
	ImageURL      string `json:"image_url,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	Status        string `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	CreatedAt     string `json:"created_at"`
}

// UnmarshalJSON treats null optional strings as empty
func (c *Content) UnmarshalJSON(data []byte) error {
	type plain Content
	var raw struct {
		plain
		ImageURL      *string `json:"image_url"`
		ScheduledDate *string `json:"scheduled_date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Content(raw.plain)
	if raw.ImageURL != nil {
		c.ImageURL = *raw.ImageURL
	}
	if raw.ScheduledDate != nil {
		c.ScheduledDate = *raw.ScheduledDate
	}
	return nil
}

// CreateContentRequest is the body of POST /api/content
type CreateContentRequest struct {
	Platform      string `json:"platform" validate:"required"`
	ContentType   string `json:"content_type" validate:"required"`
	Body          string `json:"body" validate:"required"`
	ImageURL      string `json:"image_url,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	Status        string `json:"status" validate:"required,oneof=draft scheduled published"`
}

// CreateContentResponse is returned by POST /api/content
type CreateContentResponse struct {
	ID      ID   `json:"id" validate:"required"`
	Success bool `json:"success"`
}

// BrandProfile is the body of POST /api/brand and the result of GET /api/brand
type BrandProfile struct {
	BusinessName   string    `json:"business_name" validate:"required"`
	Description    string    `json:"description"`
	Industry       string    `json:"industry" validate:"required"`
	Tone           string    `json:"tone" validate:"required"`
	TargetAudience string    `json:"target_audience"`
	BrandColors    ColorList `json:"brand_colors"`
}

// ColorList decodes from a JSON array or the comma separated form the backend stores
type ColorList []string

// UnmarshalJSON accepts ["#fff","#000"], "#fff,#000" and null
func (c *ColorList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		var colors []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				colors = append(colors, part)
			}
		}
		*c = colors
		return nil
	}
	var colors []string
	if err := json.Unmarshal(data, &colors); err != nil {
		return err
	}
	*c = colors
	return nil
}

// SaveBrandResponse is returned by POST /api/brand
type SaveBrandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

package actions

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"SocialFlow/internal/api"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/cache"
)

// Generator requests AI-written posts and images
type Generator struct {
	client *api.Client
	cache  *cache.Cache
	logger *slog.Logger

	content Guard
	images  Guard
}

// NewGenerator creates the generation actions; a nil cache disables caching
func NewGenerator(client *api.Client, c *cache.Cache, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, cache: c, logger: logger}
}

// ContentRequest is the generator form
type ContentRequest struct {
	Platform    string
	ContentType string
	Tone        string
	Topic       string
}

// Content returns text variations for req. Fresh skips cached results,
// which is what the regenerate button does.
func (g *Generator) Content(ctx context.Context, req ContentRequest, fresh bool) ([]string, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, invalid("Please describe what the post is about")
	}
	if req.Platform == "" {
		req.Platform = backend.Platforms[0]
	}
	if req.ContentType == "" {
		req.ContentType = backend.ContentTypes[0]
	}
	if req.Tone == "" {
		req.Tone = backend.Tones[0]
	}
	if !slices.Contains(backend.Platforms, req.Platform) {
		return nil, invalid("Unknown platform: " + req.Platform)
	}
	if !slices.Contains(backend.ContentTypes, req.ContentType) {
		return nil, invalid("Unknown content type: " + req.ContentType)
	}

	key := cache.GenerateCacheKey("content", req.Platform, req.ContentType, req.Tone, req.Topic)
	if !fresh && g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			g.logger.Info("cache hit", "key", key[:16])
			return cached, nil
		}
	}

	var out []string
	err := g.content.Run(ctx, func(ctx context.Context) error {
		resp, err := g.client.GenerateContent(ctx, backend.GenerateContentRequest{
			Platform:    req.Platform,
			ContentType: req.ContentType,
			Tone:        req.Tone,
			Topic:       req.Topic,
		})
		if err != nil {
			return err
		}
		out = resp.Content
		return nil
	})
	if err != nil {
		g.logger.Warn("content generation failed", "platform", req.Platform, "error", err)
		return nil, err
	}

	if g.cache != nil {
		g.cache.Put(key, out)
	}
	g.logger.Info("content generated", "platform", req.Platform, "variations", len(out))
	return out, nil
}

// Images returns image URLs for prompt in the given style
func (g *Generator) Images(ctx context.Context, prompt, style string) ([]string, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, invalid("Please describe the image you want")
	}
	if style == "" {
		style = backend.ImageStyles[0]
	}
	if !slices.Contains(backend.ImageStyles, style) {
		return nil, invalid("Unknown style: " + style)
	}

	var out []string
	err := g.images.Run(ctx, func(ctx context.Context) error {
		resp, err := g.client.GenerateImages(ctx, backend.GenerateImagesRequest{Prompt: prompt, Style: style})
		if err != nil {
			return err
		}
		out = resp.Images
		return nil
	})
	if err != nil {
		g.logger.Warn("image generation failed", "style", style, "error", err)
		return nil, err
	}
	g.logger.Info("images generated", "style", style, "count", len(out))
	return out, nil
}

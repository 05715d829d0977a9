package seo

import (
	"context"
	"time"

	"github.com/shirleylv/article-seo-tool/pkg/config"
)

// DoubaoProvider generates via ByteDance's Doubao models on the Volcengine
// Ark endpoint. The model identifier is an Ark endpoint id, overridable via
// DOUBAO_MODEL.
type DoubaoProvider struct {
	client *chatClient
}

// NewDoubaoProvider builds a provider from the doubao settings block.
func NewDoubaoProvider(settings config.ProviderSettings) *DoubaoProvider {
	return &DoubaoProvider{
		client: newChatClient(settings.APIKey, settings.BaseURL, settings.Model),
	}
}

// ID returns the provider identifier.
func (p *DoubaoProvider) ID() string {
	return "doubao"
}

// Generate performs one chat completion call against Ark.
func (p *DoubaoProvider) Generate(ctx context.Context, prompt string) Outcome {
	if p.client.apiKey == "" {
		return Unavailable("DOUBAO_API_KEY not configured")
	}
	text, usage, err := p.client.complete(ctx, prompt)
	if err != nil {
		return Errorf(err.Error())
	}
	return Success(text, p.client.model, usage)
}

// SetTimeout updates the request timeout.
func (p *DoubaoProvider) SetTimeout(timeout time.Duration) {
	p.client.SetTimeout(timeout)
}

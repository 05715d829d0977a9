package seo

import (
	"context"
	"time"

	"github.com/shirleylv/article-seo-tool/pkg/config"
)

// DeepSeekProvider generates via the DeepSeek chat API (deepseek-chat, the
// non-thinking V3 line).
type DeepSeekProvider struct {
	client *chatClient
}

// NewDeepSeekProvider builds a provider from the deepseek settings block.
func NewDeepSeekProvider(settings config.ProviderSettings) *DeepSeekProvider {
	return &DeepSeekProvider{
		client: newChatClient(settings.APIKey, settings.BaseURL, settings.Model),
	}
}

// ID returns the provider identifier.
func (p *DeepSeekProvider) ID() string {
	return "deepseek"
}

// Generate performs one chat completion call against DeepSeek.
func (p *DeepSeekProvider) Generate(ctx context.Context, prompt string) Outcome {
	if p.client.apiKey == "" {
		return Unavailable("DEEPSEEK_API_KEY not configured")
	}
	text, usage, err := p.client.complete(ctx, prompt)
	if err != nil {
		return Errorf(err.Error())
	}
	return Success(text, p.client.model, usage)
}

// SetTimeout updates the request timeout.
func (p *DeepSeekProvider) SetTimeout(timeout time.Duration) {
	p.client.SetTimeout(timeout)
}

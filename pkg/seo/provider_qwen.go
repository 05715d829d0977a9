package seo

import (
	"context"
	"time"

	"github.com/shirleylv/article-seo-tool/pkg/config"
)

// QwenProvider generates via Alibaba Cloud's Qwen models through DashScope's
// OpenAI-compatible mode (qwen-turbo by default; qwen-plus costs more).
type QwenProvider struct {
	client *chatClient
}

// NewQwenProvider builds a provider from the qwen settings block.
func NewQwenProvider(settings config.ProviderSettings) *QwenProvider {
	return &QwenProvider{
		client: newChatClient(settings.APIKey, settings.BaseURL, settings.Model),
	}
}

// ID returns the provider identifier.
func (p *QwenProvider) ID() string {
	return "qwen"
}

// Generate performs one chat completion call against DashScope.
func (p *QwenProvider) Generate(ctx context.Context, prompt string) Outcome {
	if p.client.apiKey == "" {
		return Unavailable("DASHSCOPE_API_KEY not configured")
	}
	text, usage, err := p.client.complete(ctx, prompt)
	if err != nil {
		return Errorf(err.Error())
	}
	return Success(text, p.client.model, usage)
}

// SetTimeout updates the request timeout.
func (p *QwenProvider) SetTimeout(timeout time.Duration) {
	p.client.SetTimeout(timeout)
}

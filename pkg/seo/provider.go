package seo

import (
	"context"
	"time"

	"github.com/shirleylv/article-seo-tool/pkg/config"
)

// Provider defines the behavior required for an AI text-generation backend.
// Generate performs exactly one call with a bounded timeout and reports its
// result as an Outcome; it must never panic and never retry.
type Provider interface {
	ID() string
	Generate(ctx context.Context, prompt string) Outcome
}

// TimeoutConfigurer is an optional interface for providers that can adjust
// request timeouts.
type TimeoutConfigurer interface {
	SetTimeout(timeout time.Duration)
}

// providerFactory builds all configured providers from config. Backends
// without credentials are still constructed; they answer Unavailable so the
// orchestrator can log and advance the chain.
func providerFactory(cfg *config.Config) map[string]Provider {
	return map[string]Provider{
		"doubao":   NewDoubaoProvider(cfg.Providers.Doubao),
		"deepseek": NewDeepSeekProvider(cfg.Providers.DeepSeek),
		"qwen":     NewQwenProvider(cfg.Providers.Qwen),
	}
}

package seo

import (
	"context"
	"fmt"
	"time"

	"github.com/shirleylv/article-seo-tool/pkg/config"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
	"github.com/shirleylv/article-seo-tool/pkg/prompts"
)

// FallbackProvider is the provider id reported when metadata came from the
// local generator instead of a backend.
const FallbackProvider = "local"

// Orchestrator walks the provider chain for each generation request and
// degrades to the local fallback when every backend fails. It is safe for
// concurrent use; all mutable state lives in the template store.
type Orchestrator struct {
	providers       map[string]Provider
	priority        []string
	defaultProvider string
	contentCap      int
	templates       *prompts.Store
	logger          *logging.Logger
}

// NewOrchestrator wires the configured providers into an orchestrator.
func NewOrchestrator(cfg *config.Config, templates *prompts.Store, logger *logging.Logger) *Orchestrator {
	providers := providerFactory(cfg)
	timeout := cfg.Generation.Timeout()
	for _, p := range providers {
		if tc, ok := p.(TimeoutConfigurer); ok {
			tc.SetTimeout(timeout)
		}
	}
	return &Orchestrator{
		providers:       providers,
		priority:        cfg.Generation.Priority,
		defaultProvider: cfg.Generation.DefaultProvider,
		contentCap:      cfg.Generation.ContentCap,
		templates:       templates,
		logger:          logger,
	}
}

// Providers returns the configured provider ids in priority order.
func (o *Orchestrator) Providers() []string {
	ids := make([]string, len(o.priority))
	copy(ids, o.priority)
	return ids
}

// GenerateSEO produces summary, keywords and slug for an article. A
// recognized preferred provider is tried alone; otherwise the full priority
// chain runs in order. The first backend whose response parses to a
// non-empty result wins. When the chain is exhausted the local generator
// answers, so this method always returns usable metadata.
func (o *Orchestrator) GenerateSEO(ctx context.Context, title, content, preferred string) Generation {
	start := time.Now()
	chain := o.chain(preferred)
	capped := capRunes(content, o.contentCap)

	for _, id := range chain {
		provider, ok := o.providers[id]
		if !ok {
			continue
		}
		prompt := prompts.Render(o.templates.Get(id), title, capped)
		outcome := o.attempt(ctx, provider, prompt)

		switch outcome.Status {
		case StatusUnavailable:
			o.logger.Debug(logging.CategoryGenerate, "provider_skipped", outcome.Reason,
				map[string]interface{}{"provider": id})
			continue
		case StatusError:
			o.logger.Warn(logging.CategoryGenerate, "provider_failed", outcome.Reason,
				map[string]interface{}{"provider": id})
			continue
		}

		result, tier := Parse(outcome.RawText)
		if result.Empty() {
			o.logger.Warn(logging.CategoryParse, "parse_empty",
				"response yielded no usable fields",
				map[string]interface{}{"provider": id, "tier": tier.String()})
			continue
		}
		if tier != TierStrict {
			o.logger.Warn(logging.CategoryParse, "parse_degraded",
				"response was not clean JSON",
				map[string]interface{}{"provider": id, "tier": tier.String()})
		}
		o.logger.Info(logging.CategoryGenerate, "generation_complete",
			fmt.Sprintf("generated metadata via %s", id),
			map[string]interface{}{
				"provider":     id,
				"model":        outcome.Model,
				"total_tokens": outcome.Usage.TotalTokens,
				"duration_ms":  time.Since(start).Milliseconds(),
			})
		return Generation{Result: result, Provider: id, Model: outcome.Model}
	}

	o.logger.Warn(logging.CategoryGenerate, "fallback_used",
		"all providers failed, using local generation", nil)
	return Generation{Result: Fallback(title, content), Provider: FallbackProvider}
}

// chain resolves which providers to try. A recognized preferred id is tried
// alone; an unrecognized or empty one falls back to the priority order.
func (o *Orchestrator) chain(preferred string) []string {
	if preferred == "" {
		preferred = o.defaultProvider
	}
	if _, ok := o.providers[preferred]; ok {
		return []string{preferred}
	}
	return o.priority
}

// attempt runs one provider call with panic containment. A panicking adapter
// must not take down the request; it reads as a failed attempt.
func (o *Orchestrator) attempt(ctx context.Context, provider Provider, prompt string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Errorf(fmt.Sprintf("provider panicked: %v", r))
		}
	}()
	return provider.Generate(ctx, prompt)
}

func capRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

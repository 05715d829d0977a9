package seo

import (
	"context"
	"strings"
	"testing"

	"github.com/shirleylv/article-seo-tool/pkg/config"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
	"github.com/shirleylv/article-seo-tool/pkg/prompts"
)

type fakeProvider struct {
	id      string
	outcome Outcome
	panics  bool
	calls   int
	prompts []string
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Generate(_ context.Context, prompt string) Outcome {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.panics {
		panic("backend exploded")
	}
	return f.outcome
}

func newTestOrchestrator(t *testing.T, providers ...*fakeProvider) (*Orchestrator, map[string]*fakeProvider) {
	t.Helper()
	byID := make(map[string]*fakeProvider, len(providers))
	pmap := make(map[string]Provider, len(providers))
	order := make([]string, 0, len(providers))
	for _, p := range providers {
		byID[p.id] = p
		pmap[p.id] = p
		order = append(order, p.id)
	}
	return &Orchestrator{
		providers:  pmap,
		priority:   order,
		contentCap: config.DefaultContentCap,
		templates:  prompts.NewStore(),
		logger:     logging.NewTestLogger(),
	}, byID
}

const goodResponse = `{"summary": "摘要", "keywords": "k1,k2,k3", "slug": "test-slug"}`

func TestGenerateSEOFirstProviderWins(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Success(goodResponse, "ep-test", Usage{TotalTokens: 10})}
	deepseek := &fakeProvider{id: "deepseek", outcome: Success(goodResponse, "deepseek-chat", Usage{})}

	o, _ := newTestOrchestrator(t, doubao, deepseek)
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "")

	if gen.Provider != "doubao" {
		t.Fatalf("expected doubao to win, got %s", gen.Provider)
	}
	if gen.Model != "ep-test" {
		t.Errorf("unexpected model: %s", gen.Model)
	}
	if gen.Summary != "摘要" {
		t.Errorf("unexpected summary: %q", gen.Summary)
	}
	if deepseek.calls != 0 {
		t.Errorf("deepseek should not have been called")
	}
}

func TestGenerateSEOPreferredShortCircuits(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Success(goodResponse, "ep-test", Usage{})}
	qwen := &fakeProvider{id: "qwen", outcome: Success(goodResponse, "qwen-turbo", Usage{})}

	o, _ := newTestOrchestrator(t, doubao, qwen)
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "qwen")

	if gen.Provider != "qwen" {
		t.Fatalf("expected qwen, got %s", gen.Provider)
	}
	if doubao.calls != 0 {
		t.Errorf("preferred provider should suppress the rest of the chain")
	}
}

func TestGenerateSEOUnrecognizedPreferredUsesChain(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Success(goodResponse, "ep-test", Usage{})}

	o, _ := newTestOrchestrator(t, doubao)
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "ernie")

	if gen.Provider != "doubao" {
		t.Fatalf("unknown preferred should fall back to the chain, got %s", gen.Provider)
	}
}

func TestGenerateSEOAdvancesPastFailures(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Unavailable("no key")}
	deepseek := &fakeProvider{id: "deepseek", outcome: Errorf("connection refused")}
	qwen := &fakeProvider{id: "qwen", outcome: Success(goodResponse, "qwen-turbo", Usage{})}

	o, _ := newTestOrchestrator(t, doubao, deepseek, qwen)
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "")

	if gen.Provider != "qwen" {
		t.Fatalf("expected qwen after two failures, got %s", gen.Provider)
	}
	if doubao.calls != 1 || deepseek.calls != 1 {
		t.Errorf("every earlier provider should be attempted once")
	}
}

func TestGenerateSEOEmptyParseAdvances(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Success(`{"other": "data"}`, "ep-test", Usage{})}
	deepseek := &fakeProvider{id: "deepseek", outcome: Success(goodResponse, "deepseek-chat", Usage{})}

	o, _ := newTestOrchestrator(t, doubao, deepseek)
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "")

	if gen.Provider != "deepseek" {
		t.Fatalf("empty parse should not win the chain, got %s", gen.Provider)
	}
}

func TestGenerateSEOPanicContained(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", panics: true}
	deepseek := &fakeProvider{id: "deepseek", outcome: Success(goodResponse, "deepseek-chat", Usage{})}

	o, _ := newTestOrchestrator(t, doubao, deepseek)
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "")

	if gen.Provider != "deepseek" {
		t.Fatalf("panicking provider should read as a failure, got %s", gen.Provider)
	}
}

func TestGenerateSEOLocalFallback(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Unavailable("no key")}
	deepseek := &fakeProvider{id: "deepseek", outcome: Errorf("timeout")}

	o, _ := newTestOrchestrator(t, doubao, deepseek)
	gen := o.GenerateSEO(context.Background(), "Fallback Title", "some article content here", "")

	if gen.Provider != FallbackProvider {
		t.Fatalf("expected local fallback, got %s", gen.Provider)
	}
	if gen.Empty() {
		t.Error("fallback generation must be non-empty")
	}
	if gen.Slug != "fallback-title" {
		t.Errorf("unexpected fallback slug: %q", gen.Slug)
	}
}

func TestGenerateSEOContentCapped(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Success(goodResponse, "ep-test", Usage{})}

	o, _ := newTestOrchestrator(t, doubao)
	o.contentCap = 10
	long := strings.Repeat("长", 50)
	o.GenerateSEO(context.Background(), "标题", long, "")

	if len(doubao.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(doubao.prompts))
	}
	if strings.Contains(doubao.prompts[0], strings.Repeat("长", 11)) {
		t.Error("prompt should not contain more than the capped content")
	}
	if !strings.Contains(doubao.prompts[0], strings.Repeat("长", 10)) {
		t.Error("prompt should contain the capped content")
	}
}

func TestGenerateSEOUsesProviderTemplate(t *testing.T) {
	doubao := &fakeProvider{id: "doubao", outcome: Success(goodResponse, "ep-test", Usage{})}

	o, _ := newTestOrchestrator(t, doubao)
	if err := o.templates.Save("doubao", "custom {title} / {content}"); err != nil {
		t.Fatal(err)
	}
	o.GenerateSEO(context.Background(), "我的标题", "我的内容", "")

	if got := doubao.prompts[0]; got != "custom 我的标题 / 我的内容" {
		t.Errorf("template override not applied: %q", got)
	}
}

func TestNewOrchestratorWiresConfiguredProviders(t *testing.T) {
	cfg := config.Default()
	o := NewOrchestrator(cfg, prompts.NewStore(), logging.NewTestLogger())

	ids := o.Providers()
	if len(ids) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(ids))
	}
	want := []string{"doubao", "deepseek", "qwen"}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("priority[%d] = %s, want %s", i, ids[i], id)
		}
	}
	// No credentials configured, so the whole chain degrades locally.
	gen := o.GenerateSEO(context.Background(), "标题", "内容", "")
	if gen.Provider != FallbackProvider {
		t.Errorf("expected local fallback without credentials, got %s", gen.Provider)
	}
}

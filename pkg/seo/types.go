// Package seo implements the metadata generation core: interchangeable AI
// provider adapters, the resilient response parser, and the fallback
// orchestrator that drives them.
package seo

import "strings"

// OutcomeStatus classifies a single provider attempt.
type OutcomeStatus int

const (
	// StatusSuccess means the backend returned assistant text.
	StatusSuccess OutcomeStatus = iota
	// StatusUnavailable means the adapter is not configured (no credential).
	StatusUnavailable
	// StatusError means a network or backend failure.
	StatusError
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the contract every provider adapter returns. Adapters never
// surface Go errors; native failure modes are folded into the status.
type Outcome struct {
	Status  OutcomeStatus
	RawText string
	Reason  string
	Model   string
	Usage   Usage
}

// Usage reports token consumption when the backend includes it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Success builds a successful outcome.
func Success(rawText, model string, usage Usage) Outcome {
	return Outcome{Status: StatusSuccess, RawText: rawText, Model: model, Usage: usage}
}

// Unavailable builds a not-configured outcome.
func Unavailable(reason string) Outcome {
	return Outcome{Status: StatusUnavailable, Reason: reason}
}

// Errorf builds a failure outcome.
func Errorf(reason string) Outcome {
	return Outcome{Status: StatusError, Reason: reason}
}

// Result is the structured SEO metadata record. All three fields are always
// present; degraded parses leave unfound fields empty.
type Result struct {
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`
	Slug     string `json:"slug"`
}

// Empty reports whether every field is blank.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Summary) == "" &&
		strings.TrimSpace(r.Keywords) == "" &&
		strings.TrimSpace(r.Slug) == ""
}

// Generation is the orchestrator's answer: the metadata plus which backend
// produced it.
type Generation struct {
	Result
	Provider string
	Model    string
}

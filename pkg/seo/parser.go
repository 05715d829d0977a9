package seo

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseTier records how far the parser had to degrade to recover metadata.
type ParseTier int

const (
	// TierStrict means the raw text was a clean JSON object.
	TierStrict ParseTier = iota
	// TierEmbedded means a JSON object was extracted from surrounding prose.
	TierEmbedded
	// TierFields means individual fields were scraped with per-field patterns.
	TierFields
)

func (t ParseTier) String() string {
	switch t {
	case TierStrict:
		return "strict"
	case TierEmbedded:
		return "embedded"
	case TierFields:
		return "fields"
	default:
		return "unknown"
	}
}

var (
	embeddedObjectRe = regexp.MustCompile(`(?s)\{[^{}]*"summary"[^{}]*\}`)
	summaryFieldRe   = regexp.MustCompile(`"summary"\s*:\s*"([^"]+)"`)
	keywordsFieldRe  = regexp.MustCompile(`"keywords"\s*:\s*"([^"]+)"`)
	slugFieldRe      = regexp.MustCompile(`"slug"\s*:\s*"([^"]+)"`)
)

// Parse recovers SEO metadata from assistant text. Models sometimes wrap the
// JSON answer in prose or markdown fences, so parsing degrades through three
// tiers instead of failing: strict decode, embedded object extraction, then
// per-field scraping. The last tier cannot fail; unfound fields stay empty.
func Parse(raw string) (Result, ParseTier) {
	if result, ok := decodeObject(raw); ok {
		return result, TierStrict
	}

	if match := embeddedObjectRe.FindString(raw); match != "" {
		if result, ok := decodeObject(match); ok {
			return result, TierEmbedded
		}
	}

	var result Result
	if m := summaryFieldRe.FindStringSubmatch(raw); m != nil {
		result.Summary = m[1]
	}
	if m := keywordsFieldRe.FindStringSubmatch(raw); m != nil {
		result.Keywords = m[1]
	}
	if m := slugFieldRe.FindStringSubmatch(raw); m != nil {
		result.Slug = m[1]
	}
	return result, TierFields
}

func decodeObject(text string) (Result, bool) {
	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Result{}, false
	}
	result.Summary = strings.TrimSpace(result.Summary)
	result.Keywords = strings.TrimSpace(result.Keywords)
	result.Slug = strings.TrimSpace(result.Slug)
	return result, true
}

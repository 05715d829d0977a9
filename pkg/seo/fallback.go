package seo

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	summaryMaxRunes  = 68
	keywordScanRunes = 500
	slugMaxRunes     = 50
)

var (
	punctRe        = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
)

// stopWords holds common Chinese function words skipped during keyword
// extraction.
var stopWords = map[string]struct{}{
	"的": {}, "是": {}, "在": {}, "了": {}, "和": {},
	"有": {}, "为": {}, "与": {}, "等": {}, "及": {},
	"或": {}, "但": {}, "而": {}, "也": {}, "都": {},
	"就": {}, "要": {}, "可以": {}, "这个": {}, "那个": {},
}

// Fallback builds deterministic metadata from the article itself. It is the
// last resort after every provider attempt failed, and it always yields a
// non-empty result.
func Fallback(title, content string) Result {
	return Result{
		Summary:  fallbackSummary(content),
		Keywords: fallbackKeywords(title, content),
		Slug:     Slugify(title),
	}
}

func fallbackSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryMaxRunes {
		return content
	}
	return string(runes[:summaryMaxRunes-3]) + "..."
}

func fallbackKeywords(title, content string) string {
	sample := []rune(content)
	if len(sample) > keywordScanRunes {
		sample = sample[:keywordScanRunes]
	}
	text := strings.ToLower(title + " " + string(sample))
	text = punctRe.ReplaceAllString(text, " ")

	var tokens []string
	for _, word := range strings.Fields(text) {
		if len([]rune(word)) < 2 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		tokens = append(tokens, word)
		if len(tokens) == 6 {
			break
		}
	}

	placeholders := []string{"关键词1", "关键词2", "关键词3"}
	for i := len(tokens); i < 3; i++ {
		tokens = append(tokens, placeholders[i])
	}
	return strings.Join(tokens, ",")
}

// Slugify derives a URL-friendly slug from a title: lowercase, punctuation
// stripped, whitespace and underscore runs collapsed to single hyphens,
// capped at 50 runes. Titles with no usable characters get a random slug.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "article-" + uuid.NewString()[:8]
	}
	if runes := []rune(slug); len(runes) > slugMaxRunes {
		slug = string(runes[:slugMaxRunes])
	}
	return slug
}

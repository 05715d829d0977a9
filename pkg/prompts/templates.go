// Package prompts holds the per-provider SEO prompt templates. Templates are
// plain text with {title} and {content} placeholders and can be edited at
// runtime through the prompt management API; overrides live in memory only.
package prompts

import (
	"fmt"
	"strings"
	"sync"
)

const defaultTemplate = `你是一个专业的SEO内容优化专家。请根据以下文章内容，生成高质量的SEO信息。

【文章标题】
{title}

【文章内容】
{content}

【任务要求】
请仔细阅读文章标题和内容，理解文章的核心主题和关键信息，然后生成以下SEO内容：

1. **摘要（summary）**：
   - 生成一段简洁、准确、吸引人的中文摘要
   - 必须准确概括文章的核心内容和主要观点
   - 字数严格控制在68字以内（包括标点符号）
   - 语言要流畅自然，具有吸引力
   - 不要使用"本文"、"文章"等词开头

2. **关键词（keywords）**：
   - 根据文章标题、内容和摘要，提取3-6个最相关的关键词
   - 关键词要符合Google SEO规范，具有搜索价值
   - 优先选择用户可能搜索的核心词汇
   - 使用英文逗号,隔开，不要有空格
   - 格式示例：关键词1,关键词2,关键词3

3. **Slug（slug）**：
   - 根据文章的标题和核心内容，生成一个适用于URL的英文slug
   - 全部使用小写字母
   - 只包含字母、数字和连字符（-）
   - 长度控制在30-50个字符之间
   - 要简洁、有意义、易于理解
   - 格式示例：article-title-seo-friendly

【输出格式】
请严格按照以下JSON格式返回，不要添加任何其他文字说明：
{
    "summary": "这里填写68字以内的中文摘要",
    "keywords": "关键词1,关键词2,关键词3",
    "slug": "article-slug-format"
}

请开始生成：`

var supportedTemplates = map[string]struct{}{
	"doubao":   {},
	"deepseek": {},
	"qwen":     {},
}

// Store guards the runtime template overrides. Reads happen on every
// generation request; writes only when an operator saves a template.
type Store struct {
	mu        sync.RWMutex
	overrides map[string]string
}

// NewStore creates a template store with no overrides.
func NewStore() *Store {
	return &Store{overrides: make(map[string]string)}
}

// Get returns the effective template for a provider. Unknown providers get
// the default template, so rendering never fails.
func (s *Store) Get(provider string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if override, ok := s.overrides[provider]; ok {
		return override
	}
	return defaultTemplate
}

// Save replaces the template for a known provider.
func (s *Store) Save(provider, template string) error {
	if !isSupportedTemplate(provider) {
		return fmt.Errorf("unknown provider: %s", provider)
	}
	if strings.TrimSpace(template) == "" {
		return fmt.Errorf("template must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[provider] = template
	return nil
}

// Reset restores the default template for a known provider and returns it.
func (s *Store) Reset(provider string) (string, error) {
	if !isSupportedTemplate(provider) {
		return "", fmt.Errorf("unknown provider: %s", provider)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, provider)
	return defaultTemplate, nil
}

// IsKnown reports whether the provider id has a managed template.
func IsKnown(provider string) bool {
	return isSupportedTemplate(provider)
}

func isSupportedTemplate(provider string) bool {
	_, ok := supportedTemplates[provider]
	return ok
}

// Render substitutes title and content into a template.
func Render(template, title, content string) string {
	rendered := strings.ReplaceAll(template, "{title}", title)
	return strings.ReplaceAll(rendered, "{content}", content)
}

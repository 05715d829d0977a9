package seo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

// systemPrompt frames every chat completion request the same way the
// original tool did.
const systemPrompt = "你是一个专业的SEO内容生成助手，擅长生成高质量的摘要、关键词和URL友好的slug。"

// chatClient performs OpenAI-compatible chat completion calls. Doubao,
// DeepSeek and DashScope's compatible mode all speak this dialect, so the
// per-provider adapters stay thin.
type chatClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func newChatClient(apiKey, baseURL, model string) *chatClient {
	return &chatClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SetTimeout updates the request timeout (0 disables it).
func (c *chatClient) SetTimeout(timeout time.Duration) {
	if c.httpClient != nil {
		c.httpClient.Timeout = timeout
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends one blocking chat completion request. No retries happen
// here; fallback across providers is the orchestrator's job.
func (c *chatClient) complete(ctx context.Context, prompt string) (string, Usage, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		Stream:      false,
	})
	if err != nil {
		return "", Usage{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", Usage{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", Usage{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", Usage{}, fmt.Errorf("reading response: %w", err)
	}

	var chatResp chatResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(payload, &chatResp) == nil && chatResp.Error != nil {
			return "", Usage{}, fmt.Errorf("request failed: %s (code %s, %s)",
				resp.Status, chatResp.Error.Code, chatResp.Error.Message)
		}
		return "", Usage{}, fmt.Errorf("request failed: %s", resp.Status)
	}

	if err := json.Unmarshal(payload, &chatResp); err != nil {
		return "", Usage{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, chatResp.Usage, nil
}

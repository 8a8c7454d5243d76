package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider is the cheap fallback backend, spoken to over the
// OpenAI-compatible chat completions API.
type GroqProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	return &GroqProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    groqBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if strings.TrimSpace(p.apiKey) == "" {
		return "", &ProviderError{Provider: p.Name(), Reason: "missing api key"}
	}

	prompt := req.Prompt
	body := map[string]any{
		"model": p.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
	}
	if req.Format == FormatJSON {
		// Groq honors response_format, but the instruction suffix keeps the
		// model from wrapping the document in prose anyway.
		body["messages"] = []map[string]string{{
			"role":    "user",
			"content": prompt + "\n\nRETURN JSON ONLY.",
		}}
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "marshal request", Err: err}
	}

	url := strings.TrimRight(p.baseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "create request", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "send request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "read response", Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &RateLimitError{Provider: p.Name()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{
			Provider: p.Name(),
			Reason:   fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "decode response", Err: err}
	}
	if len(decoded.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Reason: "empty choices in response"}
	}

	text := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if text == "" {
		return "", &ProviderError{Provider: p.Name(), Reason: "empty content in response"}
	}
	return text, nil
}

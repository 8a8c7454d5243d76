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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Gemini generateContent REST endpoint. It is the
// primary provider in production config.
type GeminiProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if strings.TrimSpace(p.apiKey) == "" {
		return "", &ProviderError{Provider: p.Name(), Reason: "missing api key"}
	}

	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}

	body := map[string]any{
		"contents": []content{{Parts: []part{{Text: req.Prompt}}}},
	}
	if req.Format == FormatJSON {
		body["generationConfig"] = map[string]string{
			"responseMimeType": "application/json",
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "marshal request", Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(p.baseURL, "/"), p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

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
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", &ProviderError{Provider: p.Name(), Reason: "decode response", Err: err}
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Provider: p.Name(), Reason: "empty candidates in response"}
	}

	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", &ProviderError{Provider: p.Name(), Reason: "empty text in response"}
	}
	return text, nil
}

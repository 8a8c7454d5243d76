package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent") {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Fatalf("api key header mismatch")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gc, ok := body["generationConfig"].(map[string]any)
		if !ok || gc["responseMimeType"] != "application/json" {
			t.Fatalf("expected json mime type hint, got %v", body["generationConfig"])
		}

		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": `{"ok": true}`}},
				},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	text, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi", Format: FormatJSON})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != `{"ok": true}` {
		t.Errorf("text = %q", text)
	}
}

func TestGeminiProviderRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi"})
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want RateLimitError", err)
	}
}

func TestGeminiProviderServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewGeminiProvider("test-key", "gemini-2.0-flash")
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi"})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	var rl *RateLimitError
	if errors.As(err, &rl) {
		t.Fatal("service error must not be classified as rate limit")
	}
}

func TestGeminiProviderMissingKey(t *testing.T) {
	p := NewGeminiProvider("", "gemini-2.0-flash")
	_, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi"})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
}

func TestGroqProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer groq-key" {
			t.Fatalf("auth header mismatch")
		}

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat map[string]string `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Model != "llama-3.3-70b-versatile" {
			t.Fatalf("model = %s", body.Model)
		}
		if !strings.HasSuffix(body.Messages[0].Content, "RETURN JSON ONLY.") {
			t.Fatalf("json instruction suffix missing: %q", body.Messages[0].Content)
		}
		if body.ResponseFormat["type"] != "json_object" {
			t.Fatalf("response_format = %v", body.ResponseFormat)
		}

		resp := map[string]any{
			"choices": []map[string]any{{
				"message": map[string]string{"content": `{"ok": true}`},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewGroqProvider("groq-key", "llama-3.3-70b-versatile")
	p.baseURL = srv.URL

	text, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi", Format: FormatJSON})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != `{"ok": true}` {
		t.Errorf("text = %q", text)
	}
}

func TestGroqProviderTextFormatOmitsJSONHints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["response_format"]; ok {
			t.Fatal("response_format must not be set for text requests")
		}

		resp := map[string]any{
			"choices": []map[string]any{{
				"message": map[string]string{"content": "plain text"},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewGroqProvider("groq-key", "m")
	p.baseURL = srv.URL

	text, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi", Format: FormatText})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if text != "plain text" {
		t.Errorf("text = %q", text)
	}
}

func TestGroqProviderRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGroqProvider("groq-key", "m")
	p.baseURL = srv.URL

	_, err := p.Generate(context.Background(), GenerationRequest{Prompt: "hi"})
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want RateLimitError", err)
	}
}

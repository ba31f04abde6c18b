package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaguanLabs/furigo"
)

func newOpenAITestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("Expected a single user message, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIProvider_Generate(t *testing.T) {
	body := `{"id":"1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"PLAIN: 你好\nLEARNING: こんにちは"},"finish_reason":"stop"}]}`
	server := newOpenAITestServer(t, http.StatusOK, body)

	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1"})

	text, err := p.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "PLAIN: 你好\nLEARNING: こんにちは" {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusOK, `{"id":"1","object":"chat.completion","choices":[]}`)
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1"})

	_, err := p.Generate(context.Background(), "prompt")
	if !furigo.IsNoContent(err) {
		t.Fatalf("Expected NoContent error, got %v", err)
	}
}

func TestOpenAIProvider_APIError(t *testing.T) {
	server := newOpenAITestServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test", BaseURL: server.URL + "/v1"})

	_, err := p.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error")
	}
	if furigo.IsNoContent(err) {
		t.Error("API failure should not be NoContent")
	}
}

func TestOpenAIProvider_Defaults(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test"})
	if p.Model() != "gpt-4o-mini" {
		t.Errorf("Expected default model, got %q", p.Model())
	}
	if p.temperature != 0.3 {
		t.Errorf("Expected default temperature 0.3, got %v", p.temperature)
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	reply, err := m.Generate(context.Background(), furigo.BuildPrompt("東京へ行く", furigo.ToChinese))
	if err != nil {
		t.Fatalf("MockProvider.Generate failed: %v", err)
	}
	if reply != "PLAIN: 去東京\nLEARNING: 東京[とうきょう]へ行[い]く" {
		t.Errorf("Unexpected reply %q", reply)
	}

	m.Default = "fallback"
	reply, _ = m.Generate(context.Background(), furigo.BuildPrompt("unknown", furigo.ToJapanese))
	if reply != "fallback" {
		t.Errorf("Expected default reply, got %q", reply)
	}

	if m.CallCount() != 2 {
		t.Errorf("Expected CallCount 2, got %d", m.CallCount())
	}

	m.Reset()
	if m.CallCount() != 0 || m.LastPrompt() != "" {
		t.Error("Reset should clear state")
	}
}

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/furigo"
)

const (
	// DefaultGeminiBaseURL is the Gemini REST API models endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	// DefaultGeminiModel is the model used when none is configured.
	DefaultGeminiModel = "gemini-2.5-flash"
)

// GeminiProvider implements AIProvider with the Gemini generateContent API.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey     string       // Gemini API key
	Model      string       // Model to use (default: "gemini-2.5-flash")
	BaseURL    string       // Custom models endpoint (optional)
	HTTPClient *http.Client // Custom client (optional)
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}

	// No client timeout: a started request runs to completion or failure.
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      *geminiContent `json:"content"`
		FinishReason string         `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate sends prompt to generateContent and returns the first candidate's text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &furigo.ProviderError{Message: "encoding Gemini request", Cause: err}
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &furigo.ProviderError{Message: "building Gemini request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("User-Agent", furigo.UserAgent())

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &furigo.ProviderError{Message: "Gemini request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &furigo.ProviderError{Message: "reading Gemini response", Cause: err}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &furigo.ProviderError{
			Message: fmt.Sprintf("decoding Gemini response (status %d)", resp.StatusCode),
			Cause:   err,
		}
	}

	text := firstCandidateText(parsed)
	if text == "" {
		return "", &furigo.ProviderError{
			Message:   noContentReason(resp.StatusCode, parsed),
			NoContent: true,
		}
	}

	return text, nil
}

func firstCandidateText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return strings.TrimSpace(content.Parts[0].Text)
}

func noContentReason(status int, resp geminiResponse) string {
	switch {
	case resp.Error != nil:
		return fmt.Sprintf("Gemini API error (status %d): %s", status, resp.Error.Message)
	case resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "":
		return "Gemini blocked the prompt: " + resp.PromptFeedback.BlockReason
	default:
		return fmt.Sprintf("no text in Gemini response (status %d)", status)
	}
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Verify GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

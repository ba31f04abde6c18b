package provider

import (
	"context"
	"strings"
	"sync"
)

// MockProvider is a mock AI provider for testing.
type MockProvider struct {
	Responses map[string]string // Reply keyed by the text embedded in the prompt
	Default   string            // Reply when no key matches
	Err       error             // Returned instead of a reply when set

	mu         sync.Mutex
	callCount  int
	lastPrompt string
}

// NewMockProvider creates a new mock provider with canned replies.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: map[string]string{
			"こんにちは": "PLAIN: 你好\nLEARNING: こんにちは",
			"東京へ行く": "PLAIN: 去東京\nLEARNING: 東京[とうきょう]へ行[い]く",
			"我是老師":  "PLAIN: 私は先生です\nLEARNING: 私[わたし]は先生[せんせい]です",
		},
	}
}

// Generate returns the canned reply for the text fenced in prompt.
func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}

	if reply, ok := m.Responses[promptText(prompt)]; ok {
		return reply, nil
	}
	return m.Default, nil
}

// promptText returns the text between the prompt's triple quotes.
func promptText(prompt string) string {
	const fence = `"""`
	start := strings.Index(prompt, fence)
	if start < 0 {
		return prompt
	}
	rest := prompt[start+len(fence):]
	if end := strings.LastIndex(rest, fence); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// CallCount returns the number of Generate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompt returns the prompt of the most recent call.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// Reset resets the call count and last prompt.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastPrompt = ""
}

// Verify MockProvider implements AIProvider
var _ AIProvider = (*MockProvider)(nil)

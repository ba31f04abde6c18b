package furigo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// AIProvider is the interface for remote text-generation backends.
type AIProvider interface {
	// Generate sends prompt and returns the generated text. Implementations
	// return a *ProviderError with NoContent set when the response was valid
	// but carried no text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Translator is the translation client: prompt, one remote call, parsing.
type Translator struct {
	provider AIProvider
	logger   zerolog.Logger
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithLogger sets the logger used to report provider failures.
func WithLogger(logger zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a new Translator backed by provider.
func NewTranslator(provider AIProvider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider: provider,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate translates text in direction d.
//
// It never fails: provider failures are turned into localized placeholder
// text in both fields. IsError is left for the caller to classify.
func (t *Translator) Translate(ctx context.Context, text string, d Direction) TranslationResult {
	prompt := BuildPrompt(strings.TrimSpace(text), d)

	raw, err := t.provider.Generate(ctx, prompt)
	if err != nil {
		placeholder := FailedText(d)
		if IsNoContent(err) {
			placeholder = UnavailableText(d)
		}
		t.logger.Error().Err(err).
			Str("direction", d.String()).
			Str("selection", SelectionDigest(text)).
			Msg("translation request failed")
		return placeholderResult(placeholder, d)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return placeholderResult(UnavailableText(d), d)
	}

	plain, learning := ParseResponse(raw)
	return TranslationResult{
		PlainText:    plain,
		LearningText: FuriganaToRuby(learning),
		Target:       d.String(),
	}
}

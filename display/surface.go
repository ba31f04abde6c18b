// Package display renders translation results for a viewer.
//
// A Surface gets results two ways: it pulls the latest one when it opens and
// it receives pushes while it is open. Both paths end in the same cached
// result, so whichever arrives last is what the viewer sees.
package display

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/furigo"
	"github.com/rs/zerolog"
)

// LoadingLabel is shown until the first result has been delivered.
const LoadingLabel = "載入中... / 読み込み中..."

// Puller fetches the latest result from the controller.
type Puller interface {
	GetTranslation(ctx context.Context) (furigo.TranslationResult, error)
}

// PullerFunc adapts a function to the Puller interface.
type PullerFunc func(ctx context.Context) (furigo.TranslationResult, error)

// GetTranslation calls f.
func (f PullerFunc) GetTranslation(ctx context.Context) (furigo.TranslationResult, error) {
	return f(ctx)
}

// View is what a surface currently displays.
type View struct {
	Loading      bool
	LearningMode bool
	IsError      bool
	// Markup is true when Content holds learning markup instead of inert text.
	Markup  bool
	Content string
	// Lang is the BCP 47 tag of Content, empty when unknown.
	Lang string
}

// Surface is a display surface with a cached result and a preference.
type Surface struct {
	puller Puller
	prefs  furigo.PreferenceStore
	logger zerolog.Logger

	mu     sync.RWMutex
	result *furigo.TranslationResult
	pref   furigo.UserPreference
}

// SurfaceOption is a functional option for configuring a Surface.
type SurfaceOption func(*Surface)

// WithLogger sets the surface's logger.
func WithLogger(logger zerolog.Logger) SurfaceOption {
	return func(s *Surface) {
		s.logger = logger
	}
}

// NewSurface creates a Surface that pulls from p and keeps its preference in
// prefs. Either may be nil.
func NewSurface(p Puller, prefs furigo.PreferenceStore, opts ...SurfaceOption) *Surface {
	s := &Surface{
		puller: p,
		prefs:  prefs,
		logger: zerolog.Nop(),
		pref:   furigo.DefaultPreference(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open loads the preference and pulls the latest result. A preference that
// cannot be read falls back to the default. A failed pull leaves the surface
// as it was.
func (s *Surface) Open(ctx context.Context) error {
	if s.prefs != nil {
		pref, err := s.prefs.LoadPreference(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("preference unavailable, using default")
			pref = furigo.DefaultPreference()
		}
		s.mu.Lock()
		s.pref = pref
		s.mu.Unlock()
	}

	if s.puller == nil {
		return nil
	}

	result, err := s.puller.GetTranslation(ctx)
	if err != nil {
		return fmt.Errorf("pull translation: %w", err)
	}
	s.Receive(result)
	return nil
}

// Receive replaces the cached result.
func (s *Surface) Receive(r furigo.TranslationResult) {
	s.mu.Lock()
	s.result = &r
	s.mu.Unlock()
}

// Handle applies a pushed message. It reports whether the message changed
// what the surface displays.
func (s *Surface) Handle(msg furigo.Message) bool {
	if msg.Type != furigo.MessageTranslationResult {
		return false
	}
	s.Receive(msg.Result())
	return true
}

// LearningMode reports the current preference.
func (s *Surface) LearningMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref.LearningMode
}

// SetLearningMode switches between the plain and learning fields and persists
// the choice. The cached result is re-rendered as is. When the choice cannot
// be saved the surface keeps its current mode.
func (s *Surface) SetLearningMode(ctx context.Context, enabled bool) error {
	pref := furigo.UserPreference{LearningMode: enabled}

	if s.prefs != nil {
		if err := s.prefs.SavePreference(ctx, pref); err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
	}

	s.mu.Lock()
	s.pref = pref
	s.mu.Unlock()
	return nil
}

// View returns what the surface displays right now.
func (s *Surface) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := View{LearningMode: s.pref.LearningMode}
	if s.result == nil {
		v.Loading = true
		v.Content = LoadingLabel
		return v
	}

	v.IsError = s.result.IsError
	if v.LearningMode {
		v.Markup = true
		v.Content = s.result.LearningText
	} else {
		v.Content = s.result.PlainText
	}
	v.Lang = contentLang(*s.result, v.LearningMode)
	return v
}

// contentLang tags the displayed field. The learning field is always Japanese
// unless it is a placeholder, which is written in the target language.
func contentLang(r furigo.TranslationResult, learning bool) string {
	if learning && r.LearningText != r.PlainText {
		return furigo.ToHTMLLang(furigo.ToJapanese.String())
	}
	return furigo.ToHTMLLang(r.Target)
}

package display

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/store"
)

type countingPuller struct {
	mu     sync.Mutex
	result furigo.TranslationResult
	err    error
	calls  int
}

func (p *countingPuller) GetTranslation(ctx context.Context) (furigo.TranslationResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.result, p.err
}

func (p *countingPuller) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

var sample = furigo.TranslationResult{
	PlainText:    "私は学生です",
	LearningText: "<ruby>私<rt>わたし</rt></ruby>は<ruby>学生<rt>がくせい</rt></ruby>です",
}

func TestSurface_LoadingUntilDelivered(t *testing.T) {
	s := NewSurface(nil, nil)

	v := s.View()
	if !v.Loading {
		t.Error("Expected loading before any result")
	}
	if v.Content != LoadingLabel {
		t.Errorf("Expected loading label, got %q", v.Content)
	}

	s.Receive(sample)
	if s.View().Loading {
		t.Error("Expected loading to end after delivery")
	}
}

func TestSurface_OpenPulls(t *testing.T) {
	puller := &countingPuller{result: sample}
	s := NewSurface(puller, store.NewMemoryStore())

	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	v := s.View()
	if !v.LearningMode || !v.Markup {
		t.Error("Expected learning mode by default")
	}
	if v.Content != sample.LearningText {
		t.Errorf("Expected learning text, got %q", v.Content)
	}
}

func TestSurface_PullFailureKeepsState(t *testing.T) {
	puller := &countingPuller{err: errors.New("connection refused")}
	s := NewSurface(puller, nil)

	if err := s.Open(context.Background()); err == nil {
		t.Error("Expected pull error")
	}
	if !s.View().Loading {
		t.Error("Expected surface to stay loading")
	}
}

func TestSurface_LastDeliveryWins(t *testing.T) {
	older := furigo.TranslationResult{
		PlainText:    "我是學生",
		LearningText: "<ruby>私<rt>わたし</rt></ruby>は<ruby>学生<rt>がくせい</rt></ruby>です",
		Target:       "zh_TW",
	}
	newer := furigo.TranslationResult{
		PlainText:    "今天天氣很好",
		LearningText: "<ruby>今日<rt>きょう</rt></ruby>は<ruby>天気<rt>てんき</rt></ruby>がいい",
		Target:       "zh_TW",
	}

	t.Run("pull then push", func(t *testing.T) {
		s := NewSurface(&countingPuller{result: older}, nil)
		if err := s.Open(context.Background()); err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		s.Handle(furigo.ResultMessage(newer))

		if got := s.View().Content; got != newer.LearningText {
			t.Errorf("Expected pushed result, got %q", got)
		}
	})

	t.Run("push then pull", func(t *testing.T) {
		s := NewSurface(&countingPuller{result: older}, nil)
		s.Handle(furigo.ResultMessage(newer))
		if err := s.Open(context.Background()); err != nil {
			t.Fatalf("Open failed: %v", err)
		}

		if got := s.View().Content; got != older.LearningText {
			t.Errorf("Expected pulled result, got %q", got)
		}
	})
}

func TestSurface_Lang(t *testing.T) {
	loading := furigo.LoadingResult(furigo.ToChinese)

	tests := []struct {
		name     string
		result   furigo.TranslationResult
		learning bool
		expected string
	}{
		{"to japanese plain", furigo.TranslationResult{PlainText: "私は学生です", LearningText: "<ruby>私<rt>わたし</rt></ruby>は学生です", Target: "ja"}, false, "ja"},
		{"to chinese plain", furigo.TranslationResult{PlainText: "我是學生", LearningText: "<ruby>私<rt>わたし</rt></ruby>は学生です", Target: "zh_TW"}, false, "zh-TW"},
		{"to chinese learning", furigo.TranslationResult{PlainText: "我是學生", LearningText: "<ruby>私<rt>わたし</rt></ruby>は学生です", Target: "zh_TW"}, true, "ja"},
		{"placeholder in learning mode", loading, true, "zh-TW"},
		{"no target", furigo.InitialResult(), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(nil, nil)
			s.pref.LearningMode = tt.learning
			s.Receive(tt.result)

			if got := s.View().Lang; got != tt.expected {
				t.Errorf("Lang = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSurface_HandleIgnoresOtherMessages(t *testing.T) {
	s := NewSurface(nil, nil)
	if s.Handle(furigo.Message{Type: furigo.MessageOpenPopup}) {
		t.Error("openPopup should not change the view")
	}
	if !s.View().Loading {
		t.Error("Expected loading")
	}
}

func TestSurface_ToggleWithoutRemoteCall(t *testing.T) {
	puller := &countingPuller{result: sample}
	prefs := store.NewMemoryStore()
	s := NewSurface(puller, prefs)
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.SetLearningMode(context.Background(), false); err != nil {
		t.Fatalf("SetLearningMode failed: %v", err)
	}

	v := s.View()
	if v.Markup || v.Content != sample.PlainText {
		t.Errorf("Expected plain text, got %+v", v)
	}
	if puller.count() != 1 {
		t.Errorf("Toggle should not pull again, got %d pulls", puller.count())
	}

	saved, err := prefs.LoadPreference(context.Background())
	if err != nil {
		t.Fatalf("LoadPreference failed: %v", err)
	}
	if saved.LearningMode {
		t.Error("Expected preference to be persisted")
	}

	// a new surface picks the persisted preference up
	other := NewSurface(puller, prefs)
	if err := other.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if other.LearningMode() {
		t.Error("Expected persisted preference on reopen")
	}
}

func TestSurface_ErrorFlag(t *testing.T) {
	s := NewSurface(nil, nil)
	s.Receive(furigo.TranslationResult{PlainText: "(翻譯失敗)", LearningText: "(翻譯失敗)", IsError: true})

	if !s.View().IsError {
		t.Error("Expected error flag in view")
	}
}

type failingPrefs struct {
	furigo.UserPreference
}

func (p *failingPrefs) LoadPreference(ctx context.Context) (furigo.UserPreference, error) {
	return p.UserPreference, nil
}

func (p *failingPrefs) SavePreference(ctx context.Context, pref furigo.UserPreference) error {
	return errors.New("disk full")
}

func TestSurface_ToggleKeptWhenSaveFails(t *testing.T) {
	s := NewSurface(&countingPuller{result: sample}, &failingPrefs{furigo.DefaultPreference()})
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.SetLearningMode(context.Background(), false); err == nil {
		t.Fatal("Expected save error")
	}

	v := s.View()
	if !v.LearningMode || v.Content != sample.LearningText {
		t.Errorf("Expected learning view to remain, got %+v", v)
	}
}

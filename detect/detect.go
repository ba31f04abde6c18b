// Package detect guesses the translation direction of a selection.
package detect

import (
	"strings"
	"sync"
	"unicode"

	"github.com/ZaguanLabs/furigo"
	lingua "github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// IsJapanese reports whether text reads as Japanese. Any kana settles it;
// text without Han characters is never Japanese; otherwise the statistical
// detector decides between Japanese and Chinese.
func IsJapanese(text string) bool {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return false
	}

	hasHan := false
	for _, r := range sample {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return true
		}
		if unicode.Is(unicode.Han, r) {
			hasHan = true
		}
	}
	if !hasHan {
		return false
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	return exists && language == lingua.Japanese
}

// Direction picks ToChinese for Japanese text and ToJapanese otherwise.
func Direction(text string) furigo.Direction {
	if IsJapanese(text) {
		return furigo.ToChinese
	}
	return furigo.ToJapanese
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Japanese, lingua.Chinese).
			Build()
	})
	return detector
}

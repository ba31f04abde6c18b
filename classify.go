package furigo

import "strings"

// FailureKeywords are the substrings of the failure placeholders in both languages.
var FailureKeywords = []string{
	"翻譯失敗",
	"無法取得翻譯結果",
	"翻訳失敗",
	"翻訳結果を取得できません",
}

// IsFailureText reports whether either field carries a failure placeholder.
func IsFailureText(plain, learning string) bool {
	for _, keyword := range FailureKeywords {
		if strings.Contains(plain, keyword) || strings.Contains(learning, keyword) {
			return true
		}
	}
	return false
}

// Classify returns r with IsError set from its text.
func Classify(r TranslationResult) TranslationResult {
	r.IsError = IsFailureText(r.PlainText, r.LearningText)
	return r
}

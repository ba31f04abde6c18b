package furigo

import "testing"

func TestIsFailureText(t *testing.T) {
	tests := []struct {
		name     string
		plain    string
		learning string
		expected bool
	}{
		{"chinese transport failure", "(翻譯失敗)", "(翻譯失敗)", true},
		{"chinese missing payload", "(無法取得翻譯結果)", "ok", true},
		{"japanese transport failure", "ok", "(翻訳失敗)", true},
		{"japanese missing payload", "(翻訳結果を取得できません)", "(翻訳結果を取得できません)", true},
		{"keyword inside text", "前文 翻訳失敗 後文", "", true},
		{"normal result", "你好", "こんにちは", false},
		{"loading text", "正在翻譯中...", "正在翻譯中...", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFailureText(tt.plain, tt.learning); got != tt.expected {
				t.Errorf("IsFailureText(%q, %q) = %v, want %v", tt.plain, tt.learning, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	r := Classify(TranslationResult{PlainText: FailedText(ToJapanese), LearningText: FailedText(ToJapanese)})
	if !r.IsError {
		t.Error("Failure placeholder should be classified as error")
	}

	r = Classify(TranslationResult{PlainText: "你好", LearningText: "こんにちは", IsError: true})
	if r.IsError {
		t.Error("Normal text should clear IsError")
	}
}

package furigo

import "testing"

func TestFuriganaToRuby(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single run",
			input:    "東京[とうきょう]へ行く",
			expected: "<ruby>東京<rt>とうきょう</rt></ruby>へ行く",
		},
		{
			name:     "multiple runs",
			input:    "私[わたし]は学生[がくせい]です",
			expected: "<ruby>私<rt>わたし</rt></ruby>は<ruby>学生<rt>がくせい</rt></ruby>です",
		},
		{
			name:     "iteration mark",
			input:    "人々[ひとびと]",
			expected: "<ruby>人々<rt>ひとびと</rt></ruby>",
		},
		{
			name:     "small ke counter",
			input:    "三ヶ月[さんかげつ]",
			expected: "<ruby>三ヶ月<rt>さんかげつ</rt></ruby>",
		},
		{
			name:     "katakana reading is not converted",
			input:    "東京[トウキョウ]",
			expected: "東京[トウキョウ]",
		},
		{
			name:     "kana base is not converted",
			input:    "ひらがな[ひらがな]",
			expected: "ひらがな[ひらがな]",
		},
		{
			name:     "latin brackets pass through",
			input:    "array[index] と API",
			expected: "array[index] と API",
		},
		{
			name:     "no notation",
			input:    "こんにちは、世界！",
			expected: "こんにちは、世界！",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuriganaToRuby(tt.input)
			if got != tt.expected {
				t.Errorf("FuriganaToRuby(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFuriganaToRuby_Idempotent(t *testing.T) {
	inputs := []string{
		"東京[とうきょう]へ行[い]く",
		"私は学生です",
		"<ruby>東京<rt>とうきょう</rt></ruby>へ行く",
	}

	for _, input := range inputs {
		once := FuriganaToRuby(input)
		twice := FuriganaToRuby(once)
		if once != twice {
			t.Errorf("transform not idempotent for %q: %q then %q", input, once, twice)
		}
		if HasFurigana(once) {
			t.Errorf("%q still has bracket notation after transform", once)
		}
	}
}

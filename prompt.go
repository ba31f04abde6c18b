package furigo

import "fmt"

const properNounRule = `IMPORTANT: Do NOT translate proper nouns (names of people, organizations, brands, locations, book/movie titles, product names) or technical terms. Keep them exactly as they appear in the source text.`

// BuildPrompt returns the generation prompt for text in direction d.
//
// Both templates ask for exactly two labeled lines, PLAIN: and LEARNING:, with
// readings written inline as 漢字[かんじ].
func BuildPrompt(text string, d Direction) string {
	if d == ToJapanese {
		return fmt.Sprintf(`Translate the following text into %s.
%s

Provide TWO versions of the Japanese translation:
1. Plain version: Japanese text without furigana
2. Learning version: Japanese text with furigana readings for kanji in the format 漢字[かんじ]

Return in this EXACT format:
PLAIN: [Japanese translation without furigana]
LEARNING: [Japanese translation with furigana]

Example output format:
PLAIN: 私は学生です
LEARNING: 私[わたし]は学生[がくせい]です

Text: """%s"""`, TargetLanguageName(d), properNounRule, text)
	}

	return fmt.Sprintf(`The following text is in Japanese. Provide:
1. %s translation
2. The original Japanese text with furigana readings added to kanji in the format 漢字[かんじ]

%s

Return in this EXACT format:
PLAIN: [Traditional Chinese translation only]
LEARNING: [Original Japanese text with furigana added]

Example output format:
PLAIN: 我是學生
LEARNING: 私[わたし]は学生[がくせい]です

Text: """%s"""`, TargetLanguageName(d), properNounRule, text)
}

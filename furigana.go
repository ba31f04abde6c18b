package furigo

import "regexp"

// furiganaPattern matches a run of ideographs (plus 々〆ヵヶ) followed by a
// bracketed hiragana reading.
var furiganaPattern = regexp.MustCompile(`([一-龯々〆ヵヶ]+)\[([ぁ-ん]+)\]`)

// FuriganaToRuby converts 漢字[かんじ] notation into <ruby>漢字<rt>かんじ</rt></ruby>.
// Text without the notation is returned unchanged.
func FuriganaToRuby(text string) string {
	return furiganaPattern.ReplaceAllString(text, "<ruby>$1<rt>$2</rt></ruby>")
}

// HasFurigana reports whether text still contains bracket notation.
func HasFurigana(text string) bool {
	return furiganaPattern.MatchString(text)
}

package furigo

import "strings"

// Menu entry identifiers.
const (
	MenuParentID     = "translateParent"
	MenuToJapaneseID = "translateToJapanese"
	MenuToChineseID  = "translateToChinese"
)

// SelectionContext scopes menu entries to an active text selection.
const SelectionContext = "selection"

// UntranslatedText is shown before any translation has been requested.
const UntranslatedText = "尚未進行翻譯 / まだ翻訳されていません"

// directionText holds the strings that depend on the target direction.
type directionText struct {
	targetName  string // Language name used in prompts
	menuID      string
	menuTitle   string
	loading     string
	failed      string // Transport or decoding failure
	unavailable string // Valid response without generated text
}

var directionTexts = map[Direction]directionText{
	ToJapanese: {
		targetName:  "Japanese",
		menuID:      MenuToJapaneseID,
		menuTitle:   "日本語に翻訳",
		loading:     "翻訳中...",
		failed:      "(翻訳失敗)",
		unavailable: "(翻訳結果を取得できません)",
	},
	ToChinese: {
		targetName:  "Traditional Chinese",
		menuID:      MenuToChineseID,
		menuTitle:   "翻譯成繁體中文",
		loading:     "正在翻譯中...",
		failed:      "(翻譯失敗)",
		unavailable: "(無法取得翻譯結果)",
	},
}

// TargetLanguageName returns the name of the language d translates into.
func TargetLanguageName(d Direction) string {
	return directionTexts[d].targetName
}

// LoadingText returns the placeholder shown while a request is in flight.
func LoadingText(d Direction) string {
	return directionTexts[d].loading
}

// FailedText returns the placeholder for a failed remote call.
func FailedText(d Direction) string {
	return directionTexts[d].failed
}

// UnavailableText returns the placeholder for a response without generated text.
func UnavailableText(d Direction) string {
	return directionTexts[d].unavailable
}

// InitialResult is the result held before any translation was requested.
func InitialResult() TranslationResult {
	return TranslationResult{PlainText: UntranslatedText, LearningText: UntranslatedText}
}

// LoadingResult is the placeholder stored while a request is in flight.
func LoadingResult(d Direction) TranslationResult {
	return placeholderResult(LoadingText(d), d)
}

func placeholderResult(text string, d Direction) TranslationResult {
	return TranslationResult{PlainText: text, LearningText: text, Target: d.String()}
}

// Menu returns the selection context menu: one parent and two children.
func Menu() []MenuItem {
	contexts := []string{SelectionContext}
	return []MenuItem{
		{ID: MenuParentID, Title: "翻譯選取文字 / 選択したテキストを翻訳 (Gemini)", Contexts: contexts},
		{ID: MenuToJapaneseID, ParentID: MenuParentID, Title: directionTexts[ToJapanese].menuTitle, Contexts: contexts},
		{ID: MenuToChineseID, ParentID: MenuParentID, Title: directionTexts[ToChinese].menuTitle, Contexts: contexts},
	}
}

// DirectionForMenuItem maps a child menu entry to its direction.
func DirectionForMenuItem(id string) (Direction, bool) {
	for d, text := range directionTexts {
		if text.menuID == id {
			return d, true
		}
	}
	return 0, false
}

// MenuItemForDirection returns the child menu entry id for d.
func MenuItemForDirection(d Direction) string {
	return directionTexts[d].menuID
}

// ParseDirection accepts a menu entry id or a language code
// ("ja", "ja_JP", "zh", "zh-TW", ...).
func ParseDirection(s string) (Direction, bool) {
	if d, ok := DirectionForMenuItem(s); ok {
		return d, true
	}

	base := strings.ToLower(strings.Split(NormalizeLocale(strings.TrimSpace(s)), "_")[0])
	switch base {
	case "ja", "jp", "japanese":
		return ToJapanese, true
	case "zh", "tw", "chinese":
		return ToChinese, true
	}
	return 0, false
}

// NormalizeLocale converts a language code to the standard format (e.g., "zh-TW" → "zh_TW").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// ToHTMLLang converts a locale code to HTML lang attribute format (e.g., "zh_TW" → "zh-TW").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(langCode, "_", "-")
}

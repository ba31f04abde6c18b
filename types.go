package furigo

// Direction selects which of the two supported translation pairs a request uses.
type Direction int

const (
	// ToJapanese translates the selection into Japanese (plain and furigana forms).
	ToJapanese Direction = iota
	// ToChinese translates the selection into Traditional Chinese and annotates
	// the original Japanese with furigana.
	ToChinese
)

// String returns the short language code of the target language.
func (d Direction) String() string {
	switch d {
	case ToJapanese:
		return "ja"
	case ToChinese:
		return "zh_TW"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the two supported directions.
func (d Direction) Valid() bool {
	return d == ToJapanese || d == ToChinese
}

// TranslationResult is the outcome of one translation request.
type TranslationResult struct {
	PlainText    string `json:"plainText"`    // Translation without reading marks (inert text)
	LearningText string `json:"learningText"` // Reading-annotated text with <ruby> markup
	IsError      bool   `json:"isError"`      // Set when either field carries a failure placeholder
	Target       string `json:"target,omitempty"` // Direction code ("ja" or "zh_TW"); empty before the first request
}

// UserPreference is the persisted display preference.
type UserPreference struct {
	LearningMode bool `json:"learningMode"`
}

// DefaultPreference returns the preference used when nothing has been stored yet.
func DefaultPreference() UserPreference {
	return UserPreference{LearningMode: true}
}

// MenuItem is one entry of the selection context menu.
type MenuItem struct {
	ID       string   `json:"id"`
	ParentID string   `json:"parentId,omitempty"`
	Title    string   `json:"title"`
	Contexts []string `json:"contexts"`
}

// MenuClick is the event delivered when the user activates a menu entry.
type MenuClick struct {
	MenuItemID    string `json:"menuItemId"`
	SelectionText string `json:"selectionText"`
}

// Message types exchanged between the controller and display surfaces.
const (
	MessageGetTranslation    = "getTranslation"
	MessageTranslationResult = "translationResult"
	MessageShowTranslation   = "showTranslation"
	MessageOpenPopup         = "openPopup"
)

// Message is the envelope pushed to display surfaces.
type Message struct {
	Type         string `json:"type"`
	PlainText    string `json:"plainText,omitempty"`
	LearningText string `json:"learningText,omitempty"`
	IsError      bool   `json:"isError,omitempty"`
	Target       string `json:"target,omitempty"`
	Text         string `json:"text,omitempty"` // showTranslation only
}

// ResultMessage wraps a result as a translationResult push.
func ResultMessage(r TranslationResult) Message {
	return Message{
		Type:         MessageTranslationResult,
		PlainText:    r.PlainText,
		LearningText: r.LearningText,
		IsError:      r.IsError,
		Target:       r.Target,
	}
}

// Result extracts the TranslationResult carried by a translationResult message.
func (m Message) Result() TranslationResult {
	return TranslationResult{
		PlainText:    m.PlainText,
		LearningText: m.LearningText,
		IsError:      m.IsError,
		Target:       m.Target,
	}
}

// IgnoredTags contains HTML tags whose content is dropped from learning markup.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"iframe":   true,
	"object":   true,
	"template": true,
	"textarea": true,
	"noscript": true,
}

// RubyTags contains the tags allowed to survive in learning markup.
var RubyTags = map[string]bool{
	"ruby": true,
	"rt":   true,
	"rp":   true,
	"rb":   true,
	"br":   true,
}

package furigo

import "strings"

// Labels of the two sections the prompt asks the model to return.
const (
	PlainLabel    = "PLAIN:"
	LearningLabel = "LEARNING:"
)

// ParseResponse extracts the plain and learning sections from a model reply.
//
// The plain section runs from PLAIN: up to the next LEARNING: label or the end
// of the text; the learning section runs from LEARNING: to the end. Both are
// trimmed. The model does not always follow the format, so a missing or empty
// plain section falls back to the whole reply, and a missing or empty learning
// section falls back to the plain value. The learning value is returned before
// the furigana transform.
func ParseResponse(raw string) (plain, learning string) {
	plain = strings.TrimSpace(raw)
	if i := strings.Index(raw, PlainLabel); i >= 0 {
		rest := raw[i+len(PlainLabel):]
		if j := strings.Index(rest, LearningLabel); j >= 0 {
			rest = rest[:j]
		}
		if s := strings.TrimSpace(rest); s != "" {
			plain = s
		}
	}

	learning = plain
	if i := strings.Index(raw, LearningLabel); i >= 0 {
		if s := strings.TrimSpace(raw[i+len(LearningLabel):]); s != "" {
			learning = s
		}
	}

	return plain, learning
}

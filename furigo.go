// Package furigo translates selected text between Japanese and Chinese with a
// remote LLM and annotates the Japanese side with furigana.
//
// The package holds the domain core: prompt construction, parsing of the
// model's PLAIN:/LEARNING: reply, the furigana-to-ruby transform, the
// Translator (translation client) and the Controller that plays the role of
// the context-menu handler and owns the latest result.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/furigo"
//	    "github.com/ZaguanLabs/furigo/provider"
//	)
//
//	func main() {
//	    p := provider.NewGeminiProvider(provider.GeminiConfig{
//	        APIKey: os.Getenv("GEMINI_API_KEY"),
//	    })
//
//	    t := furigo.NewTranslator(p)
//
//	    result := t.Translate(context.Background(), "東京へ行く", furigo.ToChinese)
//	    fmt.Println(result.PlainText)    // 去東京
//	    fmt.Println(result.LearningText) // <ruby>東京<rt>とうきょう</rt></ruby>へ<ruby>行<rt>い</rt></ruby>く
//	}
package furigo

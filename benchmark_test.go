package furigo_test

import (
	"context"
	"testing"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/markup"
	"github.com/ZaguanLabs/furigo/provider"
)

// Benchmarks for performance validation

func BenchmarkHashText(b *testing.B) {
	text := "東京へ行くのは久しぶりです"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		furigo.HashText(text)
	}
}

func BenchmarkParseResponse(b *testing.B) {
	raw := "PLAIN: 私は学生です\nLEARNING: 私[わたし]は学生[がくせい]です"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		furigo.ParseResponse(raw)
	}
}

func BenchmarkFuriganaToRuby(b *testing.B) {
	text := "私[わたし]は毎日[まいにち]電車[でんしゃ]で会社[かいしゃ]に行[い]きます"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		furigo.FuriganaToRuby(text)
	}
}

func BenchmarkSanitize(b *testing.B) {
	html := furigo.FuriganaToRuby("私[わたし]は毎日[まいにち]電車[でんしゃ]で会社[かいしゃ]に行[い]きます")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		markup.Sanitize(html)
	}
}

func BenchmarkTranslate(b *testing.B) {
	t := furigo.NewTranslator(provider.NewMockProvider())
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Translate(ctx, "東京へ行く", furigo.ToChinese)
	}
}

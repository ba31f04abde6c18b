package display

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/ZaguanLabs/furigo/markup"
)

// ToggleLabel labels the learning-mode switch.
const ToggleLabel = "學習模式 / 学習モード (ふりがな)"

// Renderer writes a View to w.
type Renderer interface {
	Render(w io.Writer, v View) error
}

// HTMLRenderer renders views as HTML. Plain content is escaped; learning
// markup is sanitized down to ruby before it is written.
type HTMLRenderer struct {
	tmpl    *template.Template
	title   string
	overlay time.Duration
}

// NewHTMLRenderer parses the popup templates.
func NewHTMLRenderer(overlay time.Duration) (*HTMLRenderer, error) {
	tmpl, err := template.New("page").Parse(fragmentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse fragment template: %w", err)
	}
	if _, err := tmpl.Parse(pageTemplate); err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	if overlay <= 0 {
		overlay = DefaultOverlayDuration
	}

	return &HTMLRenderer{
		tmpl:    tmpl,
		title:   "翻譯結果 / 翻訳結果",
		overlay: overlay,
	}, nil
}

type fragmentData struct {
	View
	HTML template.HTML
}

func (r *HTMLRenderer) fragment(v View) (fragmentData, error) {
	data := fragmentData{View: v}
	if v.Markup {
		clean, err := markup.Sanitize(v.Content)
		if err != nil {
			return data, err
		}
		data.HTML = template.HTML(clean)
	}
	return data, nil
}

// Render writes the result fragment for v.
func (r *HTMLRenderer) Render(w io.Writer, v View) error {
	data, err := r.fragment(v)
	if err != nil {
		return err
	}
	if err := r.tmpl.ExecuteTemplate(w, "fragment", data); err != nil {
		return fmt.Errorf("render fragment: %w", err)
	}
	return nil
}

// RenderPage writes the full popup page for v.
func (r *HTMLRenderer) RenderPage(w io.Writer, v View) error {
	fragment, err := r.fragment(v)
	if err != nil {
		return err
	}

	data := struct {
		Title         string
		ToggleLabel   string
		OverlayMillis int64
		View          View
		Fragment      fragmentData
	}{
		Title:         r.title,
		ToggleLabel:   ToggleLabel,
		OverlayMillis: r.overlay.Milliseconds(),
		View:          v,
		Fragment:      fragment,
	}

	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// TextRenderer renders views for terminals. Ruby annotations are written as
// base(reading).
type TextRenderer struct{}

// Render writes v as a single block of text followed by a newline.
func (TextRenderer) Render(w io.Writer, v View) error {
	content := v.Content
	if v.Markup {
		text, err := markup.ToText(content)
		if err != nil {
			return err
		}
		content = text
	}

	if v.IsError {
		content = "✗ " + content
	}

	_, err := io.WriteString(w, strings.TrimRight(content, "\n")+"\n")
	return err
}

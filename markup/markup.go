// Package markup sanitizes and inspects the ruby markup of learning text.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/furigo"
	"golang.org/x/net/html"
)

// Reading is one base text with its ruby annotation.
type Reading struct {
	Base    string `json:"base"`
	Reading string `json:"reading"`
}

// parse wraps fragment in a body so that every node lands under <body>.
func parse(fragment string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + fragment + "</body>"))
	if err != nil {
		return nil, &furigo.MarkupError{Message: "failed to parse learning markup", Cause: err}
	}
	return doc.Find("body").First(), nil
}

// ignoredSelector matches every element whose content is dropped.
func ignoredSelector() string {
	tags := make([]string, 0, len(furigo.IgnoredTags))
	for tag := range furigo.IgnoredTags {
		tags = append(tags, tag)
	}
	return strings.Join(tags, ", ")
}

// Sanitize keeps text and ruby elements, drops ignored elements with their
// content, unwraps every other element and strips all attributes.
func Sanitize(fragment string) (string, error) {
	body, err := parse(fragment)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(html.EscapeString(n.Data))
			return
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if furigo.IgnoredTags[tag] {
				return
			}
			if furigo.RubyTags[tag] {
				if tag == "br" {
					b.WriteString("<br>")
					return
				}
				b.WriteString("<" + tag + ">")
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				b.WriteString("</" + tag + ">")
				return
			}
		case html.CommentNode:
			return
		}

		// Unwrap anything else
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range body.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	return b.String(), nil
}

// ToText renders learning markup as plain text, writing each ruby element
// as base(reading).
func ToText(fragment string) (string, error) {
	body, err := parse(fragment)
	if err != nil {
		return "", err
	}

	body.Find(ignoredSelector()).Remove()
	body.Find("ruby").Each(func(i int, s *goquery.Selection) {
		r := readingOf(s)
		text := r.Base
		if r.Reading != "" {
			text += "(" + r.Reading + ")"
		}
		s.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: text})
	})

	return body.Text(), nil
}

// Readings lists the base/reading pairs of every ruby element in order.
func Readings(fragment string) ([]Reading, error) {
	body, err := parse(fragment)
	if err != nil {
		return nil, err
	}

	var readings []Reading
	body.Find("ruby").Each(func(i int, s *goquery.Selection) {
		readings = append(readings, readingOf(s))
	})
	return readings, nil
}

// readingOf splits a ruby selection into its base and annotation text.
func readingOf(s *goquery.Selection) Reading {
	reading := strings.TrimSpace(s.Find("rt").Text())

	var base strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "rt" || c.Data == "rp") {
				continue
			}
			base.WriteString(nodeText(c))
		}
	}

	return Reading{Base: strings.TrimSpace(base.String()), Reading: reading}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

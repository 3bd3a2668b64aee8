// Package htmlutil extracts short text snippets from HTML documents.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/happyhackingspace/gsdmm/internal/textutil"
)

// LoadHTML parses HTML bytes into a goquery Document.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses an HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// ExtractTexts returns the normalized text of every element matching the
// CSS selector, in document order, skipping elements that end up empty.
func ExtractTexts(doc *goquery.Document, selector string) []string {
	var texts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(textutil.NormalizeWhitespaces(s.Text()))
		if text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// Title returns the document title, normalized.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(textutil.NormalizeWhitespaces(doc.Find("title").First().Text()))
}

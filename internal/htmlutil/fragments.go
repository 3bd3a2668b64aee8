package htmlutil

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/happyhackingspace/gsdmm/internal/textutil"
)

// maxFragmentLen bounds emitted fragments in runes. Block content past the
// bound is dropped: it is running prose, not a short text.
const maxFragmentLen = 500

// blockTags delimit fragments during the DOM walk.
var blockTags = map[string]bool{
	"title": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "p": true, "div": true, "section": true,
	"article": true, "header": true, "footer": true, "nav": true,
	"aside": true, "li": true, "ul": true, "ol": true, "table": true,
	"tr": true, "td": true, "th": true, "blockquote": true, "pre": true,
	"figcaption": true, "br": true, "hr": true,
}

// skipTags hold no readable text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"iframe": true, "svg": true, "textarea": true,
}

// Fragments walks the document tree and returns one normalized text
// fragment per block-level element, in document order. Inline markup
// stays merged with its surrounding text. Description meta tags count as
// fragments; fragments longer than maxFragmentLen runes are dropped.
func Fragments(doc *goquery.Document) []string {
	var frags []string
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		joined := strings.TrimSpace(textutil.NormalizeWhitespaces(strings.Join(buf, " ")))
		buf = buf[:0]
		if joined != "" && utf8.RuneCountInString(joined) <= maxFragmentLen {
			frags = append(frags, joined)
		}
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				buf = append(buf, t)
			}
			return
		case html.ElementNode:
			if skipTags[n.Data] {
				return
			}
			if n.Data == "meta" {
				if t := metaDescription(n); t != "" {
					flush()
					buf = append(buf, t)
					flush()
				}
				return
			}
			if blockTags[n.Data] {
				flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			flush()
		}
	}

	for _, root := range doc.Nodes {
		visit(root)
	}
	flush()
	return frags
}

// metaDescription returns the content of a description or og:description
// meta tag, empty otherwise.
func metaDescription(n *html.Node) string {
	var name, content string
	for _, a := range n.Attr {
		switch a.Key {
		case "name", "property":
			name = strings.ToLower(a.Val)
		case "content":
			content = a.Val
		}
	}
	if name == "description" || name == "og:description" {
		return strings.TrimSpace(content)
	}
	return ""
}

package htmlutil

import (
	"reflect"
	"strings"
	"testing"
)

const testHTML = `
<html><head>
<title>Daily  Digest</title>
<meta charset="utf-8">
<meta name="description" content="Markets  and weather news">
<script>var tracked = true;</script>
<style>p { color: red; }</style>
</head>
<body>
<h1>Breaking News</h1>
<p>Stocks <b>rallied</b> today.</p>
<div>Weather:
sunny</div>
<ul><li>First item</li><li>Second item</li></ul>
<p>   </p>
</body></html>
`

func TestExtractTexts(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}

	got := ExtractTexts(doc, "h1, p")
	want := []string{"Breaking News", "Stocks rallied today."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTexts = %v, want %v", got, want)
	}
}

func TestExtractTextsNoMatch(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}
	if got := ExtractTexts(doc, "article"); got != nil {
		t.Errorf("ExtractTexts = %v, want nil", got)
	}
}

func TestTitle(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}
	if got := Title(doc); got != "Daily Digest" {
		t.Errorf("Title = %q, want %q", got, "Daily Digest")
	}
}

func TestFragments(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}

	got := Fragments(doc)
	want := []string{
		"Daily Digest",
		"Markets and weather news",
		"Breaking News",
		"Stocks rallied today.",
		"Weather: sunny",
		"First item",
		"Second item",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments = %v, want %v", got, want)
	}
}

func TestFragmentsInlineMarkupMerged(t *testing.T) {
	doc, err := LoadHTMLString(`<p>The <em>quick</em> brown <span>fox</span></p>`)
	if err != nil {
		t.Fatal(err)
	}
	got := Fragments(doc)
	want := []string{"The quick brown fox"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments = %v, want %v", got, want)
	}
}

func TestFragmentsSkipsScripts(t *testing.T) {
	doc, err := LoadHTMLString(`<div>visible<script>hidden()</script></div>`)
	if err != nil {
		t.Fatal(err)
	}
	got := Fragments(doc)
	want := []string{"visible"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments = %v, want %v", got, want)
	}
}

func TestFragmentsOpenGraphDescription(t *testing.T) {
	doc, err := LoadHTMLString(`<html><head><meta property="og:description" content="Social  blurb"></head><body><p>Body</p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	got := Fragments(doc)
	want := []string{"Social blurb", "Body"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments = %v, want %v", got, want)
	}
}

func TestFragmentsDropsLongBlocks(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 60)
	doc, err := LoadHTMLString(`<p>short one</p><p>` + long + `</p>`)
	if err != nil {
		t.Fatal(err)
	}
	got := Fragments(doc)
	want := []string{"short one"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fragments = %v, want %v", got, want)
	}
}

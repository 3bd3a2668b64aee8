// Package textutil provides text processing utilities for document clustering.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize extracts word tokens from text (Unicode-aware, matching Python's (?u)\b\w+\b).
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// TokenNgrams returns n-grams from a list of tokens, joined by space.
func TokenNgrams(tokens []string, minN, maxN int) []string {
	tLen := len(tokens)
	var res []string
	for n := minN; n <= maxN && n <= tLen; n++ {
		for i := 0; i <= tLen-n; i++ {
			res = append(res, strings.Join(tokens[i:i+n], " "))
		}
	}
	return res
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// Normalize lowercases text and normalizes whitespace.
func Normalize(text string) string {
	return NormalizeWhitespaces(strings.ToLower(text))
}

// Options controls how raw text is turned into tokens.
type Options struct {
	Lowercase      bool            `json:"lowercase"`
	MinTokenLength int             `json:"min_token_length"`
	StopWords      map[string]bool `json:"stop_words,omitempty"`
	MaxNgram       int             `json:"max_ngram"`
}

// DefaultOptions returns the tokenizer options used when none are given.
func DefaultOptions() Options {
	return Options{Lowercase: true, MinTokenLength: 1, MaxNgram: 1}
}

// Filter drops stop words and tokens shorter than MinTokenLength.
func Filter(tokens []string, opts Options) []string {
	if len(opts.StopWords) == 0 && opts.MinTokenLength <= 1 {
		return tokens
	}
	res := tokens[:0:0]
	for _, tok := range tokens {
		if opts.MinTokenLength > 1 && utf8.RuneCountInString(tok) < opts.MinTokenLength {
			continue
		}
		if opts.StopWords[tok] {
			continue
		}
		res = append(res, tok)
	}
	return res
}

// Process runs the full pipeline: normalize, tokenize, filter, expand n-grams.
func Process(text string, opts Options) []string {
	if opts.Lowercase {
		text = Normalize(text)
	} else {
		text = NormalizeWhitespaces(text)
	}
	tokens := Filter(Tokenize(text), opts)
	if opts.MaxNgram > 1 {
		tokens = TokenNgrams(tokens, 1, opts.MaxNgram)
	}
	return tokens
}

// EnglishStopWords returns a default English stop words set.
func EnglishStopWords() map[string]bool {
	words := []string{
		"a", "about", "above", "after", "again", "against", "ain", "all", "am",
		"an", "and", "any", "are", "aren", "aren't", "as", "at", "be", "because",
		"been", "before", "being", "below", "between", "both", "but", "by", "can",
		"couldn", "couldn't", "d", "did", "didn", "didn't", "do", "does", "doesn",
		"doesn't", "doing", "don", "don't", "down", "during", "each", "few", "for",
		"from", "further", "had", "hadn", "hadn't", "has", "hasn", "hasn't", "have",
		"haven", "haven't", "having", "he", "her", "here", "hers", "herself", "him",
		"himself", "his", "how", "i", "if", "in", "into", "is", "isn", "isn't", "it",
		"it's", "its", "itself", "just", "ll", "m", "ma", "me", "mightn", "mightn't",
		"more", "most", "mustn", "mustn't", "my", "myself", "needn", "needn't", "no",
		"nor", "not", "now", "o", "of", "off", "on", "once", "only", "or", "other",
		"our", "ours", "ourselves", "out", "over", "own", "re", "s", "same", "shan",
		"shan't", "she", "she's", "should", "should've", "shouldn", "shouldn't", "so",
		"some", "such", "t", "than", "that", "that'll", "the", "their", "theirs",
		"them", "themselves", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "ve", "very", "was", "wasn",
		"wasn't", "we", "were", "weren", "weren't", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "won", "won't", "wouldn",
		"wouldn't", "y", "you", "you'd", "you'll", "you're", "you've", "your",
		"yours", "yourself", "yourselves",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

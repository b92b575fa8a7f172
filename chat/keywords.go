// Package chat is the storefront shopping assistant. Keyword extraction and
// catalog search run locally; the reply text comes from a Generator.
package chat

import (
	"strings"
	"unicode"
)

const minKeywordLength = 3

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "you": {}, "your": {}, "with": {}, "have": {},
	"show": {}, "want": {}, "need": {}, "looking": {}, "find": {}, "some": {},
	"any": {}, "are": {}, "can": {}, "what": {}, "which": {}, "that": {}, "this": {},
	"something": {}, "please": {}, "would": {}, "like": {}, "from": {}, "about": {},
	"buy": {}, "get": {}, "has": {}, "there": {}, "items": {}, "item": {},
	"products": {}, "product": {}, "recommend": {}, "suggest": {}, "hello": {},
	"thanks": {}, "thank": {}, "help": {}, "under": {}, "cheap": {}, "best": {},
}

// Keywords lowercases a message and returns its distinct search terms in the
// order they appear. Stopwords and words shorter than three letters are dropped.
func Keywords(message string) []string {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < minKeywordLength {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		f = singular(f)
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// singular trims a plain English plural so "lamps" matches "Lamp".
func singular(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s") && len(word) > minKeywordLength:
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// Package lexer turns free text into normalised search terms.
//
// Letters and digits never share a token: "abc123" yields "abc" and "123".
// Alphabetic tokens are lower-cased and Porter-stemmed; numeric tokens are
// kept as-is. Single-letter tokens carry no signal and are dropped.
package lexer

import (
	"unicode"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// Tokenize returns the terms of text in order of appearance.
func Tokenize(text string) []string {
	var out []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			out = append(out, string(runes[i:j]))
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			if j-i > 1 {
				out = append(out, porterstemmer.StemString(string(runes[i:j])))
			}
			i = j
		default:
			i++
		}
	}
	return out
}

// TermFrequencies counts every term of text.
func TermFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, term := range Tokenize(text) {
		freq[term]++
	}
	return freq
}

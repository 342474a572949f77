//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tok

import (
	"fmt"
	"os"
	"strings"
)

//
// CORPUS TOKENIZATION
//

// a "word" is a maximal run of ASCII letters; anything else is a boundary: digits,
// punctuation, apostrophes, accented characters, ... so "Don't stop" --> [Don t stop]

// Tokenizer - turns raw text into token slices; configure once, use for a whole corpus
type Tokenizer struct {
	LowerCase bool
}

// NewTokenizer - a Tokenizer with the given case folding behavior
func NewTokenizer(lowercase bool) *Tokenizer {
	return &Tokenizer{LowerCase: lowercase}
}

// Split - break a string into word tokens; empty input yields an empty, non-nil slice
func (t *Tokenizer) Split(text string) []string {
	tokens := make([]string, 0, len(text)/6)

	isletter := func(r byte) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}

	start := -1
	for i := 0; i < len(text); i++ {
		if isletter(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}

	if t.LowerCase {
		for i := range tokens {
			tokens[i] = strings.ToLower(tokens[i])
		}
	}

	return tokens
}

// SplitFile - read and tokenize one file; an unreadable file is an error for the caller to handle
func (t *Tokenizer) SplitFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tokenizer could not read '%s': %w", path, err)
	}
	return t.Split(string(raw)), nil
}

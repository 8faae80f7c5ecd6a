// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest token kept; single characters carry no signal.
const minTokenRunes = 2

// Tokenize lowercases text and splits it into word tokens.
//
// A token is a maximal run of letters, numbers or underscores of at least
// two runes. Combining marks split tokens. Stop words are removed. Order and
// duplicates are preserved so callers can count term frequency.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	tokens := make([]string, 0, 8)

	start := -1
	runes := 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			tok := lower[start:end]
			if !IsStopWord(tok) {
				tokens = append(tokens, tok)
			}
		}
		start = -1
		runes = 0
	}

	for i, r := range lower {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lower))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

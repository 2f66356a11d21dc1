package lexer

import (
	"slices"

	"github.com/yaklabco/jslex/pkg/combinator"
)

// Token is one lexical element of the source.
// Consecutive tokens from one Tokenizer are contiguous and non-overlapping.
type Token struct {
	// Text is the exact source text of the token.
	Text string `json:"text"`

	// Types is the chain of grammar rule names that produced the token,
	// outermost first. The last entry is the most specific type.
	Types []string `json:"types"`

	// StartOffset is the byte offset where the token begins (inclusive).
	StartOffset int `json:"offset"`

	// Length is the byte length of the token.
	Length int `json:"length"`

	// Row and Col are the 0-based position of the first character.
	// Col counts tabs up to the next tab stop.
	Row int `json:"row"`
	Col int `json:"col"`

	// Element is the match tree behind the token.
	Element *combinator.Element `json:"-"`
}

// EndOffset returns the byte offset just past the token.
func (t Token) EndOffset() int {
	return t.StartOffset + t.Length
}

// Type returns the most specific rule name of the token.
func (t Token) Type() string {
	if len(t.Types) == 0 {
		return ""
	}
	return t.Types[len(t.Types)-1]
}

// Is reports whether name appears anywhere in the type chain.
func (t Token) Is(name string) bool {
	return slices.Contains(t.Types, name)
}

// Kind returns the coarse classification of the token.
func (t Token) Kind() Kind {
	return KindOf(t.Types)
}

// ValidateTokens checks that tokens are contiguous, non-overlapping and
// cover [0, contentLen) exactly.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	if tokens[0].StartOffset != 0 {
		return false
	}

	if tokens[len(tokens)-1].EndOffset() != contentLen {
		return false
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i].Length <= 0 || tokens[i].StartOffset != tokens[i-1].EndOffset() {
			return false
		}
	}

	return tokens[0].Length > 0
}

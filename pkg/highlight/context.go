// Package highlight consumes the token stream: it chooses the lexing
// context from the previous token, recovers from lex errors, assigns style
// classes and renders colored source.
package highlight

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jslex/pkg/lexer"
)

// Mode selects how the lexing context is chosen.
type Mode uint8

const (
	// ModeAuto tracks the context from the previous significant token.
	ModeAuto Mode = iota

	// ModeDivision always reads '/' as division.
	ModeDivision

	// ModeRegex always reads '/' as a regular expression.
	ModeRegex
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeDivision:
		return "division"
	case ModeRegex:
		return "regex"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode converts "auto", "division" or "regex" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	default:
		ctx, err := lexer.ParseContext(s)
		if err != nil {
			return ModeAuto, fmt.Errorf("parse mode: %w", err)
		}
		if ctx == lexer.RegexContext {
			return ModeRegex, nil
		}
		return ModeDivision, nil
	}
}

// ContextTracker decides which root rule reads the next token.
//
// After an identifier, a literal, the keyword this or a closing bracket a
// '/' divides; anywhere else, including the start of input, it opens a
// regular expression. Whitespace, comments and line terminators do not
// change the decision.
type ContextTracker struct {
	ctx lexer.Context
}

// NewContextTracker returns a tracker positioned at the start of input.
func NewContextTracker() *ContextTracker {
	return &ContextTracker{ctx: lexer.RegexContext}
}

// Context returns the context for the next token.
func (t *ContextTracker) Context() lexer.Context {
	return t.ctx
}

// Reset returns the tracker to the start-of-input state.
func (t *ContextTracker) Reset() {
	t.ctx = lexer.RegexContext
}

// Observe updates the context from a token just read. Tokens without types
// (skipped characters) leave it unchanged.
func (t *ContextTracker) Observe(tok lexer.Token) {
	kind := tok.Kind()
	switch {
	case kind == lexer.KindUnknown, kind.IsTrivia():
		return
	case kind == lexer.KindIdentifier, kind.IsLiteral():
		t.ctx = lexer.DivisionContext
	case kind == lexer.KindKeyword && tok.Text == "this":
		t.ctx = lexer.DivisionContext
	case kind == lexer.KindPunctuator && isClosingBracket(tok.Text):
		t.ctx = lexer.DivisionContext
	default:
		t.ctx = lexer.RegexContext
	}
}

func isClosingBracket(s string) bool {
	return s == ")" || s == "]" || s == "}"
}

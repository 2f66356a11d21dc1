// Package lexer drives the JavaScript grammar over a source text and
// produces a stream of classified tokens.
package lexer

import (
	"errors"
	"fmt"
	"iter"

	"github.com/yaklabco/jslex/pkg/combinator"
	"github.com/yaklabco/jslex/pkg/cursor"
	"github.com/yaklabco/jslex/pkg/jsgrammar"
)

// Tokenizer produces tokens one at a time. It owns its cursor and is not
// safe for concurrent use; the grammar it reads is shared.
type Tokenizer struct {
	src      string
	cursor   *cursor.Cursor
	division combinator.Rule
	regex    combinator.Rule
	context  Context
	base     int
	done     error
}

// New creates a Tokenizer positioned at the start of src.
func New(src string, opts ...Option) *Tokenizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := o.grammar
	if g == nil {
		g = jsgrammar.Default()
	}

	t := &Tokenizer{
		src:     src,
		cursor:  cursor.New(src, o.tabWidth),
		context: o.context,
		base:    o.startOffset,
	}

	var ok bool
	if t.division, ok = g.Rule(jsgrammar.ElementAssumingDivision); !ok {
		t.done = fmt.Errorf("%w: %s", combinator.ErrUndefinedRule, jsgrammar.ElementAssumingDivision)
	}
	if t.regex, ok = g.Rule(jsgrammar.ElementAssumingRegex); !ok {
		t.done = fmt.Errorf("%w: %s", combinator.ErrUndefinedRule, jsgrammar.ElementAssumingRegex)
	}

	return t
}

// SetContext selects the root rule used by the next call to Next.
func (t *Tokenizer) SetContext(ctx Context) {
	t.context = ctx
}

// Context returns the active context.
func (t *Tokenizer) Context() Context {
	return t.context
}

// Offset returns the offset of the next token, including the start offset.
func (t *Tokenizer) Offset() int {
	return t.base + t.cursor.Offset()
}

// Next returns the next token.
//
// The error is ErrEndOfStream after the last token, a *LexError when no
// element matches at the current position, or a *cursor.InvariantViolation
// when the grammar broke an engine rule. Once Next has returned an error it
// keeps returning the same error.
func (t *Tokenizer) Next() (tok Token, err error) {
	if t.done != nil {
		return Token{}, t.done
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			violation, ok := recovered.(*cursor.InvariantViolation)
			if !ok {
				panic(recovered)
			}
			t.done = violation
			tok, err = Token{}, violation
		}
	}()

	if t.cursor.AtEnd() {
		t.done = ErrEndOfStream
		return Token{}, t.done
	}

	rule := t.division
	if t.context == RegexContext {
		rule = t.regex
	}

	start := t.cursor.Position()
	t.cursor.ResetReach()
	el, ok := rule.Match(t.cursor)

	if depth := t.cursor.Depth(); depth != 0 {
		panic(&cursor.InvariantViolation{
			Op:     "Next",
			Offset: t.cursor.Offset(),
			Detail: fmt.Sprintf("root rule left %d outstanding marks", depth),
		})
	}

	if !ok {
		t.done = &LexError{
			Offset:  t.base + start.Offset,
			Row:     start.Row,
			Col:     start.Col,
			Reach:   t.base + t.cursor.Reach(),
			Message: fmt.Sprintf("no %s element matches %s", t.context, preview(t.src, start.Offset)),
		}
		return Token{}, t.done
	}

	if el.Len() == 0 {
		panic(&cursor.InvariantViolation{
			Op:     "Next",
			Offset: start.Offset,
			Detail: "root rule matched zero characters",
		})
	}

	return Token{
		Text:        el.Text(),
		Types:       el.SubTypes(),
		StartOffset: t.base + start.Offset,
		Length:      el.Len(),
		Row:         start.Row,
		Col:         start.Col,
		Element:     el,
	}, nil
}

// SkipInvalid resumes after a *LexError by consuming the single character
// at the error offset. It returns that character as a token with no types
// and clears the error, so the next call to Next matches from the following
// character. Any other state returns ErrNothingToSkip.
func (t *Tokenizer) SkipInvalid() (Token, error) {
	var lexErr *LexError
	if !errors.As(t.done, &lexErr) {
		return Token{}, ErrNothingToSkip
	}

	start := t.cursor.Position()
	t.cursor.Advance()
	t.done = nil

	return Token{
		Text:        t.src[start.Offset:t.cursor.Offset()],
		StartOffset: t.base + start.Offset,
		Length:      t.cursor.Offset() - start.Offset,
		Row:         start.Row,
		Col:         start.Col,
	}, nil
}

// All yields every token in order. A terminal error other than
// ErrEndOfStream is yielded once, with a zero Token, before the sequence ends.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if errors.Is(err, ErrEndOfStream) {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize reads src to the end in a single context. On error it returns
// the tokens read before the failure together with the error.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	var tokens []Token
	for tok, err := range New(src, opts...).All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

package highlight

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jslex/pkg/combinator"
	"github.com/yaklabco/jslex/pkg/lexer"
)

// Span is a token or a run of characters no element matched.
// The spans returned by Scan cover the input exactly.
type Span struct {
	lexer.Token

	// Invalid marks text that could not be tokenized.
	Invalid bool
}

// Options controls Scan.
type Options struct {
	// TabWidth is the tab stop used for columns. Zero selects the default.
	TabWidth int

	// Mode selects the lexing context.
	Mode Mode

	// Recover skips one character after a lex error and keeps lexing.
	// Without it the rest of the input becomes a single invalid span.
	Recover bool

	// Grammar replaces the default JavaScript grammar.
	Grammar *combinator.Grammar
}

// Result is the outcome of Scan.
type Result struct {
	// Spans cover the input in order.
	Spans []Span

	// Errors holds the lex error that started each invalid run.
	Errors []*lexer.LexError
}

// Tokens returns the valid tokens of the result, skipping invalid spans.
func (r Result) Tokens() []lexer.Token {
	tokens := make([]lexer.Token, 0, len(r.Spans))
	for _, span := range r.Spans {
		if !span.Invalid {
			tokens = append(tokens, span.Token)
		}
	}
	return tokens
}

// Scan tokenizes src, choosing the context per token according to
// opts.Mode. Lex errors are collected in the result; the returned error is
// non-nil only when the grammar broke an engine invariant.
func Scan(src string, opts Options) (Result, error) {
	lexOpts := []lexer.Option{lexer.WithTabWidth(opts.TabWidth)}
	if opts.Grammar != nil {
		lexOpts = append(lexOpts, lexer.WithGrammar(opts.Grammar))
	}

	tz := lexer.New(src, lexOpts...)
	tracker := NewContextTracker()

	var result Result
	for {
		tz.SetContext(contextFor(opts.Mode, tracker))

		tok, err := tz.Next()
		if err == nil {
			tracker.Observe(tok)
			result.Spans = append(result.Spans, Span{Token: tok})
			continue
		}
		if errors.Is(err, lexer.ErrEndOfStream) {
			return result, nil
		}

		var lexErr *lexer.LexError
		if !errors.As(err, &lexErr) {
			return result, fmt.Errorf("scan at offset %d: %w", tz.Offset(), err)
		}

		if !result.lastInvalid() {
			result.Errors = append(result.Errors, lexErr)
		}

		if !opts.Recover {
			result.appendInvalid(Span{Invalid: true, Token: lexer.Token{
				Text:        src[lexErr.Offset:],
				StartOffset: lexErr.Offset,
				Length:      len(src) - lexErr.Offset,
				Row:         lexErr.Row,
				Col:         lexErr.Col,
			}})
			return result, nil
		}

		skipped, err := tz.SkipInvalid()
		if err != nil {
			return result, fmt.Errorf("scan at offset %d: %w", tz.Offset(), err)
		}
		result.appendInvalid(Span{Token: skipped, Invalid: true})
	}
}

func contextFor(mode Mode, tracker *ContextTracker) lexer.Context {
	switch mode {
	case ModeDivision:
		return lexer.DivisionContext
	case ModeRegex:
		return lexer.RegexContext
	default:
		return tracker.Context()
	}
}

func (r *Result) lastInvalid() bool {
	return len(r.Spans) > 0 && r.Spans[len(r.Spans)-1].Invalid
}

// appendInvalid adds an invalid span, extending the previous one when it is
// also invalid.
func (r *Result) appendInvalid(span Span) {
	if r.lastInvalid() {
		last := &r.Spans[len(r.Spans)-1]
		last.Text += span.Text
		last.Length += span.Length
		return
	}
	r.Spans = append(r.Spans, span)
}

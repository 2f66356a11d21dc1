package lexer

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jslex/pkg/combinator"
	"github.com/yaklabco/jslex/pkg/cursor"
)

// Context selects how a bare '/' is read.
type Context uint8

const (
	// DivisionContext reads '/' as the division operator.
	DivisionContext Context = iota

	// RegexContext reads '/' as the start of a regular expression literal.
	RegexContext
)

func (c Context) String() string {
	switch c {
	case DivisionContext:
		return "division"
	case RegexContext:
		return "regex"
	default:
		return fmt.Sprintf("Context(%d)", c)
	}
}

// ParseContext converts "division" or "regex" to a Context.
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "division", "div":
		return DivisionContext, nil
	case "regex", "regexp":
		return RegexContext, nil
	default:
		return DivisionContext, fmt.Errorf("%w: %q", ErrUnknownContext, s)
	}
}

// Option configures a Tokenizer.
type Option func(*options)

type options struct {
	tabWidth    int
	context     Context
	grammar     *combinator.Grammar
	startOffset int
}

func defaultOptions() options {
	return options{
		tabWidth: cursor.DefaultTabWidth,
		context:  DivisionContext,
	}
}

// WithTabWidth sets the tab stop used for column numbers.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithContext sets the initial context.
func WithContext(ctx Context) Option {
	return func(o *options) {
		o.context = ctx
	}
}

// WithGrammar replaces the default JavaScript grammar. The grammar must
// define elementAssumingDivision and elementAssumingRegex.
func WithGrammar(g *combinator.Grammar) Option {
	return func(o *options) {
		o.grammar = g
	}
}

// WithStartOffset shifts every reported offset by base. It is used when the
// source is a fragment of a larger file.
func WithStartOffset(base int) Option {
	return func(o *options) {
		o.startOffset = base
	}
}

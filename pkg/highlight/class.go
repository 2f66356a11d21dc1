package highlight

import (
	"slices"

	"github.com/yaklabco/jslex/pkg/jsgrammar"
	"github.com/yaklabco/jslex/pkg/lexer"
)

// Class names that are not grammar rule names.
const (
	ClassLiteral = "literal"
	ClassInvalid = "invalid"
)

// Class returns the style classes of a span: its type chain without the
// entry rule, plus "literal" for literal values and "invalid" for
// characters that were skipped.
func Class(span Span) []string {
	if span.Invalid || len(span.Types) == 0 {
		return []string{ClassInvalid}
	}

	classes := make([]string, 0, len(span.Types)+1)
	for _, typ := range span.Types {
		if typ == jsgrammar.ElementAssumingDivision || typ == jsgrammar.ElementAssumingRegex {
			continue
		}
		classes = append(classes, typ)
	}

	if span.Kind().IsLiteral() && !slices.Contains(classes, ClassLiteral) {
		classes = append(classes, ClassLiteral)
	}
	if span.Kind() == lexer.KindNull || span.Kind() == lexer.KindBoolean {
		if !slices.Contains(classes, jsgrammar.ReservedWord) {
			classes = append(classes, jsgrammar.ReservedWord)
		}
	}

	return classes
}

// MergeWhitespace joins runs of adjacent whitespace spans into one span.
// Other spans are returned unchanged.
func MergeWhitespace(spans []Span) []Span {
	merged := make([]Span, 0, len(spans))
	for _, span := range spans {
		n := len(merged)
		if n > 0 && isWhitespace(span) && isWhitespace(merged[n-1]) {
			merged[n-1].Text += span.Text
			merged[n-1].Length += span.Length
			merged[n-1].Element = nil
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

func isWhitespace(span Span) bool {
	return !span.Invalid && span.Kind() == lexer.KindWhitespace
}

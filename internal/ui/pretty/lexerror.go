package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/jslex/pkg/analysis"
	"github.com/yaklabco/jslex/pkg/highlight"
	"github.com/yaklabco/jslex/pkg/lexer"
)

// FormatToken formats a token as "path:line:col  kind  "text"". The quoted
// text is cut to maxText runes when maxText is positive.
func (s *Styles) FormatToken(entry analysis.TokenEntry, maxText int) string {
	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(entry.FilePath), entry.Line, entry.Column)

	kind := entry.Kind
	if entry.Type != "" && entry.Type != kind {
		kind += "/" + entry.Type
	}

	span := highlight.Span{Token: lexer.Token{Types: entry.Types}, Invalid: entry.Invalid}
	text := s.TokenText(span, Truncate(strconv.Quote(entry.Text), maxText))

	styledKind := s.Kind.Render(kind)
	if entry.Invalid {
		styledKind = s.Error.Render(kind)
	}

	return fmt.Sprintf("%s  %s  %s\n", location, styledKind, text)
}

// FormatLexError formats a lex error with an optional source excerpt.
func (s *Styles) FormatLexError(entry analysis.LexErrorEntry, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(entry.FilePath), entry.Line, entry.Column)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n", location, s.Error.Render("error"), s.Message.Render(entry.Message)))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, entry.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker under
// the given 1-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	line = strings.ReplaceAll(line, "\t", " ")
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 && column <= len(line)+1 {
		width := utf8.RuneCountInString(line[:column-1])
		builder.WriteString(indent + strings.Repeat(" ", width) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, lexErrors int) string {
	header := s.FilePath.Render(path)
	if lexErrors > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%s)", plural(lexErrors, "lex error", "lex errors")))
	}
	return header
}

// Truncate cuts s to at most maxLen runes, ending it with an ellipsis.
// A non-positive maxLen leaves s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

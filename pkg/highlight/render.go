package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/jslex/pkg/jsgrammar"
)

// Theme maps style classes to lipgloss styles. Spans whose classes have no
// style are written as plain text.
type Theme map[string]lipgloss.Style

// DefaultTheme returns the ANSI 256 color theme used by the CLI.
func DefaultTheme() Theme {
	style := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	return Theme{
		jsgrammar.Keyword:            style("13").Bold(true),
		jsgrammar.FutureReservedWord: style("13").Italic(true),
		jsgrammar.NullLiteral:        style("14"),
		jsgrammar.BooleanLiteral:     style("14"),
		jsgrammar.NumericLiteral:     style("11"),
		jsgrammar.DecimalLiteral:     style("11"),
		jsgrammar.HexIntegerLiteral:  style("11"),
		jsgrammar.StringLiteral:      style("10"),
		jsgrammar.RegexLiteral:       style("9"),
		jsgrammar.Comment:            style("8").Italic(true),
		jsgrammar.Punctuator:         style("7"),
		jsgrammar.DivPunctuator:      style("7"),
		ClassInvalid:                 lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
	}
}

// StyleFor returns the style of the most specific class of span that the
// theme defines.
func (t Theme) StyleFor(span Span) (lipgloss.Style, bool) {
	if span.Invalid {
		style, ok := t[ClassInvalid]
		return style, ok
	}

	for i := len(span.Types) - 1; i >= 0; i-- {
		if style, ok := t[span.Types[i]]; ok {
			return style, true
		}
	}
	for _, class := range Class(span) {
		if style, ok := t[class]; ok {
			return style, true
		}
	}
	return lipgloss.Style{}, false
}

// Render writes the spans as colored source text. Multi-line spans are
// styled line by line so terminals do not carry colors across newlines.
func Render(w io.Writer, spans []Span, theme Theme) error {
	var sb strings.Builder
	for _, span := range MergeWhitespace(spans) {
		style, ok := theme.StyleFor(span)
		if !ok {
			sb.WriteString(span.Text)
			continue
		}

		style = style.TabWidth(lipgloss.NoTabConversion)
		for i, line := range strings.Split(span.Text, "\n") {
			if i > 0 {
				sb.WriteByte('\n')
			}
			body, cr := strings.CutSuffix(line, "\r")
			if body != "" {
				sb.WriteString(style.Render(body))
			}
			if cr {
				sb.WriteByte('\r')
			}
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("render highlighted source: %w", err)
	}
	return nil
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/jslex/pkg/analysis"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + one
	}
	return strconv.Itoa(n) + " " + many
}

// FormatSummaryOneLine formats run totals as a single line.
// Example: "2 lex errors in 1 file, 120 tokens in 3 files".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	scanned := fmt.Sprintf("%s in %s", plural(totals.Tokens, "token", "tokens"), plural(totals.Files, "file", "files"))

	var parts []string
	if totals.LexErrors == 0 {
		parts = append(parts, s.Success.Render("No lex errors")+s.Dim.Render(" ("+scanned+")"))
	} else {
		parts = append(parts,
			s.Error.Render(plural(totals.LexErrors, "lex error", "lex errors"))+
				" in "+plural(totals.FilesWithLexErrors, "file", "files"),
			scanned,
		)
	}

	if totals.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(totals.FilesErrored, "file", "files")+" failed"))
	}
	if totals.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(plural(totals.FilesSkipped, "file", "files")+" skipped"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files scanned", totals.Files, s.SummaryValue.Render)
	row("Sources", totals.Sources, s.SummaryValue.Render)
	if totals.FilesSkipped > 0 {
		row("Files skipped", totals.FilesSkipped, s.Dim.Render)
	}
	if totals.FilesErrored > 0 {
		row("Files failed", totals.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Tokens", totals.Tokens, s.SummaryValue.Render)
	if totals.LexErrors > 0 {
		row("Lex errors", totals.LexErrors, s.Error.Render)
		row("Invalid runs", totals.InvalidSpans, s.Error.Render)
	}

	builder.WriteString("\n")
	switch {
	case totals.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be read"))
	case totals.LexErrors > 0:
		builder.WriteString(s.Failure.Render("Lexing finished with errors"))
	default:
		builder.WriteString(s.Success.Render("Lexing passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

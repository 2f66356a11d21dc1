package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/jslex/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, LOC, KIND, TEXT
	minFileWidth     = 12
	minLocWidth      = 7
	minKindWidth     = 10
	minTextWidth     = 16
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single row in the token table.
type TableRow struct {
	File     string
	Location string
	Kind     string
	Text     string
	Invalid  bool
}

// TableFormatter formats tokens as a table fitted to the terminal width.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// TokenToTableRow converts a token entry to a table row.
func TokenToTableRow(entry analysis.TokenEntry) TableRow {
	kind := entry.Kind
	if entry.Type != "" && entry.Type != kind {
		kind = entry.Type
	}
	return TableRow{
		File:     entry.FilePath,
		Location: fmt.Sprintf("%d:%d", entry.Line, entry.Column),
		Kind:     kind,
		Text:     strconv.Quote(entry.Text),
		Invalid:  entry.Invalid,
	}
}

// FormatTable formats tokens as a table, one group per file.
func (t *TableFormatter) FormatTable(tokens []analysis.TokenEntry) string {
	if len(tokens) == 0 {
		return ""
	}

	var groups [][]TableRow
	for i, tok := range tokens {
		if i == 0 || tok.FilePath != tokens[i-1].FilePath {
			groups = append(groups, nil)
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], TokenToTableRow(tok))
	}

	widths := t.calculateColumnWidths(groups)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	return builder.String()
}

type columnWidths struct {
	file int
	loc  int
	kind int
	text int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.kind + w.text + tablePadding*tableColumnCount
}

// calculateColumnWidths sizes columns to their content, then shrinks the
// text and file columns until the table fits the terminal.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, loc: minLocWidth, kind: minKindWidth, text: minTextWidth}

	for _, group := range groups {
		for _, row := range group {
			widths.file = max(widths.file, utf8.RuneCountInString(row.File))
			widths.loc = max(widths.loc, len(row.Location))
			widths.kind = max(widths.kind, len(row.Kind))
			widths.text = max(widths.text, utf8.RuneCountInString(row.Text))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.text = max(minTextWidth, widths.text-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s ",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.kind, "KIND",
		widths.text, "TEXT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %s  %s  %s  %s",
		pad(truncateFilePath(row.File, widths.file), widths.file),
		pad(row.Location, widths.loc),
		pad(row.Kind, widths.kind),
		Truncate(row.Text, widths.text),
	)
	if row.Invalid {
		return t.styles.TableErrorRow.Render(content)
	}
	return content
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncateFilePath keeps the end of a path, which names the file.
func truncateFilePath(path string, maxLen int) string {
	n := utf8.RuneCountInString(path)
	if n <= maxLen || maxLen <= 1 {
		return path
	}
	runes := []rune(path)
	return "…" + string(runes[n-maxLen+1:])
}

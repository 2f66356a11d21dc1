package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	kindColWidth      = 30 // Width of the kind column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 8  // Width of numeric columns.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Files == 0 && report.Totals.FilesErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No files to lex."))
		return nil
	}

	r.renderKindTable(report.ByKind)
	if len(report.ByKind) > 0 {
		fmt.Fprintln(r.out)
	}
	r.renderFileTable(report.ByFile)

	fmt.Fprint(r.out, r.styles.FormatSummary(report.Totals))
	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderKindTable(kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Token Kinds"))
	r.separator()

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator()

	for _, kind := range kinds {
		padded := padRight(kind.Kind, kindColWidth)
		if kind.Kind == analysis.KindInvalid {
			padded = r.styles.TableErrorRow.Render(padded)
		} else {
			padded = r.styles.Kind.Render(padded)
		}

		fmt.Fprintf(r.out, "%s %s %s\n",
			padded,
			padLeft(strconv.Itoa(kind.Tokens), numColWidth),
			padLeft(strconv.Itoa(kind.Files), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	r.separator()

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Sources", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		if file.LexErrors > 0 {
			paddedPath = r.styles.TableErrorRow.Render(paddedPath)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			paddedPath,
			padLeft(strconv.Itoa(file.Sources), numColWidth),
			padLeft(strconv.Itoa(file.Tokens), numColWidth),
			padLeft(strconv.Itoa(file.LexErrors), numColWidth),
		)
	}
}

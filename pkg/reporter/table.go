package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/analysis"
)

// TableRenderer formats tokens as a table fitted to the terminal width.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, terminalWidth(opts.Writer, opts.TermWidth)),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	if len(report.Tokens) == 0 && len(report.LexErrors) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No tokens."))
		}
		return nil
	}

	fmt.Fprint(bw, r.formatter.FormatTable(report.Tokens))

	if len(report.LexErrors) > 0 {
		fmt.Fprintln(bw)
		for _, lexErr := range report.LexErrors {
			fmt.Fprint(bw, r.styles.FormatLexError(lexErr, r.opts.ShowContext, lexErr.SourceLine))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(bw)
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}

	return nil
}

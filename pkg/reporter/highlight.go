package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/analysis"
	"github.com/yaklabco/jslex/pkg/highlight"
	"github.com/yaklabco/jslex/pkg/runner"
	"github.com/yaklabco/jslex/pkg/source"
)

// HighlightReporter writes the scanned sources back as colored text.
// Lex errors and file errors go to the error writer so the highlighted
// output stays a faithful copy of the input.
type HighlightReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewHighlightReporter creates a new highlight reporter.
func NewHighlightReporter(opts Options) *HighlightReporter {
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = io.Discard
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &HighlightReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *HighlightReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	report := analysis.Analyze(result, analysis.Options{WorkingDir: r.opts.WorkingDir})

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	if result != nil {
		multiFile := countScanned(result) > 1
		for i := range result.Files {
			if err := r.writeFile(bw, &result.Files[i], multiFile); err != nil {
				return 0, err
			}
		}
	}

	for _, fileErr := range report.FileErrors {
		fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.FilePath),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}
	for _, lexErr := range report.LexErrors {
		fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatLexError(lexErr, r.opts.ShowContext, lexErr.SourceLine))
	}

	return report.Totals.LexErrors, nil
}

func (r *HighlightReporter) writeFile(w io.Writer, file *runner.FileOutcome, multiFile bool) error {
	if file.Error != nil || file.Skipped {
		return nil
	}

	path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

	for _, src := range file.Sources {
		switch {
		case src.Source.Kind == source.KindCodeBlock:
			header := fmt.Sprintf("%s:%d", path, src.Source.Line)
			if src.Source.Lang != "" {
				header += " (" + src.Source.Lang + ")"
			}
			fmt.Fprintln(w, r.styles.FormatFileHeader(header, len(src.Scan.Errors)))
		case multiFile:
			fmt.Fprintln(w, r.styles.FormatFileHeader(path, len(src.Scan.Errors)))
		}

		if err := highlight.Render(w, src.Scan.Spans, r.styles.Tokens); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if src.Source.Text != "" && !strings.HasSuffix(src.Source.Text, "\n") {
			fmt.Fprintln(w)
		}
	}
	return nil
}

func countScanned(result *runner.Result) int {
	n := 0
	for _, file := range result.Files {
		if file.Error == nil && !file.Skipped {
			n++
		}
	}
	return n
}

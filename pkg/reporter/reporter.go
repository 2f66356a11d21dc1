// Package reporter writes tokenizer results as text, tables, JSON, SARIF,
// summaries or highlighted source.
package reporter

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/jslex/pkg/analysis"
	"github.com/yaklabco/jslex/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// Reporter formats and writes tokenizer results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of lex errors reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.LexErrors, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options, includeTokens bool) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeTokens:     includeTokens,
			IncludeWhitespace: opts.IncludeWhitespace,
			IncludeByFile:     true,
			IncludeByKind:     true,
			SortBy:            analysis.SortByCount,
			SortDesc:          true,
			WorkingDir:        opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return newRendererFacade(NewTextRenderer(opts), opts, true), nil
	case FormatTable:
		return newRendererFacade(NewTableRenderer(opts), opts, true), nil
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts, true), nil
	case FormatSARIF:
		return newRendererFacade(NewSARIFRenderer(opts), opts, false), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts, false), nil
	case FormatHighlight:
		return NewHighlightReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// terminalWidth returns the width of the terminal behind writer, or the
// default when writer is not a terminal.
func terminalWidth(writer io.Writer, override int) int {
	if override > 0 {
		return override
	}
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/analysis"
)

// minTextPreview is the shortest token preview the text renderer prints.
const minTextPreview = 20

// textLocationWidth approximates the space taken by "path:line:col  kind  ".
const textLocationWidth = 40

// TextRenderer writes one line per token followed by the lex errors.
type TextRenderer struct {
	opts    Options
	styles  *pretty.Styles
	maxText int
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:    opts,
		styles:  pretty.NewStyles(colorEnabled),
		maxText: max(minTextPreview, terminalWidth(opts.Writer, opts.TermWidth)-textLocationWidth),
	}
}

// fileGroup holds the entries of one file in report order.
type fileGroup struct {
	path      string
	tokens    []analysis.TokenEntry
	lexErrors []analysis.LexErrorEntry
}

func groupByFile(report *analysis.Report) []*fileGroup {
	var groups []*fileGroup
	byPath := make(map[string]*fileGroup)
	group := func(path string) *fileGroup {
		g, ok := byPath[path]
		if !ok {
			g = &fileGroup{path: path}
			byPath[path] = g
			groups = append(groups, g)
		}
		return g
	}

	for _, tok := range report.Tokens {
		g := group(tok.FilePath)
		g.tokens = append(g.tokens, tok)
	}
	for _, lexErr := range report.LexErrors {
		g := group(lexErr.FilePath)
		g.lexErrors = append(g.lexErrors, lexErr)
	}
	return groups
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	totals := report.Totals
	if totals.Files == 0 && totals.FilesErrored == 0 && totals.FilesSkipped == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to lex."))
		}
		return nil
	}

	for _, fileErr := range report.FileErrors {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.FilePath),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}

	if r.opts.GroupByFile {
		for i, group := range groupByFile(report) {
			if i > 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprintln(bw, r.styles.FormatFileHeader(group.path, len(group.lexErrors)))
			r.writeEntries(bw, group.tokens, group.lexErrors)
		}
	} else {
		r.writeEntries(bw, report.Tokens, report.LexErrors)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(bw)
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(totals))
	}

	return nil
}

func (r *TextRenderer) writeEntries(bw *bufio.Writer, tokens []analysis.TokenEntry, lexErrors []analysis.LexErrorEntry) {
	for _, tok := range tokens {
		fmt.Fprint(bw, r.styles.FormatToken(tok, r.maxText))
	}
	for _, lexErr := range lexErrors {
		fmt.Fprint(bw, r.styles.FormatLexError(lexErr, r.opts.ShowContext, lexErr.SourceLine))
	}
}

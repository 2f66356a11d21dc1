// Package analysis turns a runner result into the views reporters render:
// a flat token list, lex errors with file positions and per-file and
// per-kind counts.
package analysis

import (
	"bytes"
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/jslex/pkg/highlight"
	"github.com/yaklabco/jslex/pkg/lexer"
	"github.com/yaklabco/jslex/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// KindInvalid is the kind reported for invalid runs.
const KindInvalid = "invalid"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" || !filepath.IsAbs(absPath) {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// RelativePath returns path relative to workDir when both are usable,
// and path unchanged otherwise.
func RelativePath(path, workDir string) string {
	return makeRelativePath(path, workDir)
}

// Analyze transforms a runner.Result into a Report in a single pass over
// the scanned sources.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	kinds := make(map[string]*KindAnalysis)
	kindFiles := make(map[string]map[string]bool)

	for i := range result.Files {
		file := &result.Files[i]
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		switch {
		case file.Error != nil:
			report.Totals.FilesErrored++
			report.FileErrors = append(report.FileErrors, FileErrorEntry{
				FilePath: displayPath,
				Message:  file.Error.Error(),
			})
			continue
		case file.Skipped:
			report.Totals.FilesSkipped++
			continue
		}

		report.Totals.Files++
		fa := FileAnalysis{Path: displayPath, Sources: len(file.Sources), ByKind: make(map[string]int)}

		for _, src := range file.Sources {
			report.Totals.Sources++
			pos := positioner{file: file, src: &src}

			for _, span := range src.Scan.Spans {
				kind := spanKind(span)
				if span.Invalid {
					report.Totals.InvalidSpans++
				} else {
					report.Totals.Tokens++
					fa.Tokens++
				}
				fa.ByKind[kind]++

				// Invalid runs get their own row but are not tokens.
				ka, ok := kinds[kind]
				if !ok {
					ka = &KindAnalysis{Kind: kind}
					kinds[kind] = ka
					kindFiles[kind] = make(map[string]bool)
				}
				ka.Tokens++
				kindFiles[kind][displayPath] = true

				if opts.IncludeTokens && (opts.IncludeWhitespace || !isWhitespace(span)) {
					report.Tokens = append(report.Tokens, pos.token(displayPath, kind, span))
				}
			}

			for _, lexErr := range src.Scan.Errors {
				report.LexErrors = append(report.LexErrors, pos.lexError(displayPath, lexErr))
				fa.LexErrors++
			}
		}

		report.Totals.LexErrors += fa.LexErrors
		if fa.LexErrors > 0 {
			report.Totals.FilesWithLexErrors++
		}
		if opts.IncludeByFile {
			report.ByFile = append(report.ByFile, fa)
		}
	}

	if opts.IncludeByFile {
		sortFileAnalysis(report.ByFile, opts.SortBy, opts.SortDesc)
	}
	if opts.IncludeByKind {
		report.ByKind = make([]KindAnalysis, 0, len(kinds))
		for kind, ka := range kinds {
			ka.Files = len(kindFiles[kind])
			report.ByKind = append(report.ByKind, *ka)
		}
		sortKindAnalysis(report.ByKind, opts.SortBy, opts.SortDesc)
	}

	return report
}

func spanKind(span highlight.Span) string {
	if span.Invalid {
		return KindInvalid
	}
	return span.Kind().String()
}

func isWhitespace(span highlight.Span) bool {
	if span.Invalid {
		return false
	}
	kind := span.Kind()
	return kind == lexer.KindWhitespace || kind == lexer.KindLineTerminator
}

// positioner maps source offsets to file positions.
type positioner struct {
	file *runner.FileOutcome
	src  *runner.SourceOutcome
}

func (p positioner) position(textOffset int) (int, int, int) {
	offset := p.src.Source.FileOffset(textOffset)
	if p.file.Lines == nil {
		return offset, 0, 0
	}
	line, col := p.file.Lines.Position(offset)
	return offset, line, col
}

func (p positioner) token(path, kind string, span highlight.Span) TokenEntry {
	offset, line, col := p.position(span.StartOffset)
	entry := TokenEntry{
		FilePath: path,
		Kind:     kind,
		Text:     span.Text,
		Offset:   offset,
		Length:   span.Length,
		Line:     line,
		Column:   col,
		Row:      span.Row,
		Col:      span.Col,
		Invalid:  span.Invalid,
	}
	if !span.Invalid {
		entry.Type = span.Type()
		entry.Types = span.Types
	}
	return entry
}

func (p positioner) lexError(path string, lexErr *lexer.LexError) LexErrorEntry {
	offset, line, col := p.position(lexErr.Offset)
	reach, reachLine, reachCol := p.position(lexErr.Reach)
	entry := LexErrorEntry{
		FilePath:    path,
		Message:     lexErr.Message,
		Offset:      offset,
		Line:        line,
		Column:      col,
		Reach:       reach,
		ReachLine:   reachLine,
		ReachColumn: reachCol,
		Preview:     linePreview(p.file.Content, offset),
	}
	if p.file.Lines != nil {
		entry.SourceLine = string(p.file.Lines.LineContent(line))
	}
	return entry
}

// linePreview returns the content from offset to the end of its line.
func linePreview(content []byte, offset int) string {
	if offset < 0 || offset >= len(content) {
		return ""
	}
	rest := content[offset:]
	if i := bytes.IndexAny(rest, "\r\n"); i >= 0 {
		rest = rest[:i]
	}
	return string(rest)
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortByErrors:
			if result := cmp.Compare(right.LexErrors, left.LexErrors); result != 0 {
				return result
			}
			return cmp.Compare(left.Path, right.Path)
		default: // SortByCount
			result := cmp.Compare(left.Tokens, right.Tokens)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		}
	})
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Kind, right.Kind)
		}
		result := cmp.Compare(left.Tokens, right.Tokens)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Kind, right.Kind)
		}
		return result
	})
}

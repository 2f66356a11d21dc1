package runner

import (
	"github.com/yaklabco/jslex/pkg/highlight"
	"github.com/yaklabco/jslex/pkg/source"
)

// SourceOutcome is the scan of one source inside a file.
type SourceOutcome struct {
	// Source is the JavaScript text and its location in the file.
	Source source.Source

	// Scan holds the spans and lex errors. Offsets are relative to
	// Source.Text; use Source.FileOffset to map them back.
	Scan highlight.Result
}

// FileOutcome is the result of tokenizing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Content is the raw file content.
	Content []byte

	// Lines indexes Content for offset to line/column conversion.
	Lines *source.LineIndex

	// Sources are the scanned sources in file order.
	Sources []SourceOutcome

	// Skipped is set when an explicitly named file was not recognized as
	// JavaScript.
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// TokenCount returns the number of valid tokens in the file.
func (f *FileOutcome) TokenCount() int {
	n := 0
	for _, src := range f.Sources {
		for _, span := range src.Scan.Spans {
			if !span.Invalid {
				n++
			}
		}
	}
	return n
}

// LexErrorCount returns the number of lex errors in the file.
func (f *FileOutcome) LexErrorCount() int {
	n := 0
	for _, src := range f.Sources {
		n += len(src.Scan.Errors)
	}
	return n
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files that held no JavaScript.
	FilesSkipped int

	// FilesErrored is the number of files that could not be read or scanned.
	FilesErrored int

	// FilesWithLexErrors is the number of files with at least one lex error.
	FilesWithLexErrors int

	// SourcesScanned is the number of sources tokenized.
	SourcesScanned int

	// TokensTotal is the number of valid tokens across all files.
	TokensTotal int

	// InvalidSpans is the number of invalid runs across all files.
	InvalidSpans int

	// LexErrors is the number of lex errors across all files.
	LexErrors int

	// TokensByKind maps token kind names to counts.
	TokensByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasLexErrors reports whether any source failed to tokenize cleanly.
func (r *Result) HasLexErrors() bool {
	return r != nil && r.Stats.LexErrors > 0
}

// HasFileErrors reports whether any file could not be processed.
func (r *Result) HasFileErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{TokensByKind: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.SourcesScanned += len(outcome.Sources)

	lexErrors := outcome.LexErrorCount()
	r.Stats.LexErrors += lexErrors
	if lexErrors > 0 {
		r.Stats.FilesWithLexErrors++
	}

	for _, src := range outcome.Sources {
		for _, span := range src.Scan.Spans {
			if span.Invalid {
				r.Stats.InvalidSpans++
				continue
			}
			r.Stats.TokensTotal++
			r.Stats.TokensByKind[span.Kind().String()]++
		}
	}
}

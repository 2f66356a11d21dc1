package analysis

import "time"

// Report contains pre-computed views of a tokenizer run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Tokens is the flat token list for detailed output.
	Tokens []TokenEntry `json:"tokens,omitempty"`

	// LexErrors lists every lex error with its file position.
	LexErrors []LexErrorEntry `json:"lexErrors,omitempty"`

	// FileErrors lists files that could not be read or scanned.
	FileErrors []FileErrorEntry `json:"fileErrors,omitempty"`

	// ByFile aggregates counts per file.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind aggregates counts per token kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// TokenEntry is a single token or invalid run.
//
// Line and Column are 1-based byte positions in the file. Row and Col are
// the tokenizer's own 0-based position inside the source, with tabs
// expanded.
type TokenEntry struct {
	FilePath string   `json:"filePath"`
	Kind     string   `json:"kind"`
	Type     string   `json:"type,omitempty"`
	Types    []string `json:"types,omitempty"`
	Text     string   `json:"text"`
	Offset   int      `json:"offset"`
	Length   int      `json:"length"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Invalid  bool     `json:"invalid,omitempty"`
}

// LexErrorEntry is a lex error mapped to its file position.
type LexErrorEntry struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`

	// Reach is the furthest file offset any rule examined.
	Reach       int `json:"reach"`
	ReachLine   int `json:"reachLine"`
	ReachColumn int `json:"reachColumn"`

	// Preview is the rest of the offending line.
	Preview string `json:"preview,omitempty"`

	// SourceLine is the whole offending line.
	SourceLine string `json:"sourceLine,omitempty"`
}

// FileErrorEntry is a file that failed outright.
type FileErrorEntry struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files              int `json:"filesScanned"`
	FilesSkipped       int `json:"filesSkipped"`
	FilesErrored       int `json:"filesErrored"`
	FilesWithLexErrors int `json:"filesWithLexErrors"`
	Sources            int `json:"sources"`
	Tokens             int `json:"tokens"`
	InvalidSpans       int `json:"invalidSpans"`
	LexErrors          int `json:"lexErrors"`
}

// HasLexErrors returns true if any source failed to tokenize cleanly.
func (t Totals) HasLexErrors() bool {
	return t.LexErrors > 0
}

// HasFileErrors returns true if any file could not be processed.
func (t Totals) HasFileErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path      string         `json:"path"`
	Sources   int            `json:"sources"`
	Tokens    int            `json:"tokens"`
	LexErrors int            `json:"lexErrors"`
	ByKind    map[string]int `json:"byKind,omitempty"`
}

// KindAnalysis contains aggregated data for a single token kind.
type KindAnalysis struct {
	Kind   string `json:"kind"`
	Tokens int    `json:"tokens"`
	Files  int    `json:"files"`
}

package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by token count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByErrors sorts files with the most lex errors first.
	SortByErrors SortField = "errors"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByErrors:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeTokens includes the flat token list.
	IncludeTokens bool

	// IncludeWhitespace keeps whitespace and line terminator tokens in the
	// flat list. They are always counted.
	IncludeWhitespace bool

	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeByKind includes the per-kind analysis.
	IncludeByKind bool

	// SortBy specifies how to sort ByFile and ByKind.
	SortBy SortField

	// SortDesc sorts counts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeTokens: true,
		IncludeByFile: true,
		IncludeByKind: true,
		SortBy:        SortByCount,
		SortDesc:      true,
	}
}

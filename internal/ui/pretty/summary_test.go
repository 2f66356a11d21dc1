package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/analysis"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		totals   analysis.Totals
		expected string
	}{
		{
			name:     "clean",
			totals:   analysis.Totals{Files: 3, Tokens: 120},
			expected: "No lex errors (120 tokens in 3 files)\n",
		},
		{
			name:     "singular",
			totals:   analysis.Totals{Files: 1, Tokens: 1},
			expected: "No lex errors (1 token in 1 file)\n",
		},
		{
			name:     "lex errors",
			totals:   analysis.Totals{Files: 3, Tokens: 40, LexErrors: 2, FilesWithLexErrors: 1},
			expected: "2 lex errors in 1 file, 40 tokens in 3 files\n",
		},
		{
			name:     "failed and skipped files",
			totals:   analysis.Totals{Files: 1, Tokens: 5, FilesErrored: 2, FilesSkipped: 1},
			expected: "No lex errors (5 tokens in 1 file), 2 files failed, 1 file skipped\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, styles.FormatSummaryOneLine(testCase.totals))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	clean := styles.FormatSummary(analysis.Totals{Files: 4, Sources: 6, Tokens: 300})
	assert.Contains(t, clean, "Summary")
	assert.Contains(t, clean, "Files scanned:     4")
	assert.Contains(t, clean, "Sources:           6")
	assert.Contains(t, clean, "Tokens:            300")
	assert.Contains(t, clean, "Lexing passed")
	assert.NotContains(t, clean, "Lex errors")

	failing := styles.FormatSummary(analysis.Totals{Files: 1, LexErrors: 2, InvalidSpans: 2})
	assert.Contains(t, failing, "Lex errors:        2")
	assert.Contains(t, failing, "Lexing finished with errors")

	broken := styles.FormatSummary(analysis.Totals{FilesErrored: 1})
	assert.Contains(t, broken, "Files failed:      1")
	assert.Contains(t, broken, "Some files could not be read")
}

package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jslex/pkg/highlight"
	"github.com/yaklabco/jslex/pkg/reporter"
	"github.com/yaklabco/jslex/pkg/runner"
	"github.com/yaklabco/jslex/pkg/source"
)

// fixture is a file to scan into a runner.Result.
type fixture struct {
	path    string
	content string
	err     error
}

func buildResult(t *testing.T, fixtures ...fixture) *runner.Result {
	t.Helper()

	result := &runner.Result{}
	for _, fix := range fixtures {
		if fix.err != nil {
			result.Files = append(result.Files, runner.FileOutcome{Path: fix.path, Error: fix.err})
			continue
		}

		content := []byte(fix.content)
		outcome := runner.FileOutcome{
			Path:    fix.path,
			Content: content,
			Lines:   source.NewLineIndex(content),
		}

		sources, err := source.Split(context.Background(), fix.path, content, source.Options{Markdown: true})
		require.NoError(t, err)
		for _, src := range sources {
			scan, err := highlight.Scan(src.Text, highlight.Options{Recover: true})
			require.NoError(t, err)
			outcome.Sources = append(outcome.Sources, runner.SourceOutcome{Source: src, Scan: scan})
		}
		result.Files = append(result.Files, outcome)
	}
	return result
}

// twoFiles has one clean file and one file with a single lex error at 1:3.
func twoFiles(t *testing.T) *runner.Result {
	t.Helper()
	return buildResult(t,
		fixture{path: "a.js", content: "var x = 1;\n"},
		fixture{path: "b.js", content: "y @ z\n"},
	)
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = "never"
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "highlight", input: "highlight", want: reporter.FormatHighlight},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid formats")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatHighlight.IsValid())
	assert.False(t, reporter.Format("unknown").IsValid())
	assert.False(t, reporter.Format("").IsValid())
	assert.Equal(t, "sarif", reporter.FormatSARIF.String())
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestNew_ReturnsLexErrorCount(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{
		reporter.FormatText,
		reporter.FormatTable,
		reporter.FormatJSON,
		reporter.FormatSARIF,
		reporter.FormatSummary,
		reporter.FormatHighlight,
	} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			_, count := report(t, reporter.Options{Format: format, ErrorWriter: &bytes.Buffer{}}, twoFiles(t))
			assert.Equal(t, 1, count)
		})
	}
}

func TestTextRenderer(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{
		Format:      reporter.FormatText,
		GroupByFile: true,
		ShowContext: true,
		ShowSummary: true,
		TermWidth:   120,
	}, twoFiles(t))

	assert.Contains(t, out, "a.js\n")
	assert.Contains(t, out, `a.js:1:1  keyword  "var"`)
	assert.Contains(t, out, `a.js:1:9  numeric/decimalLiteral  "1"`)
	assert.Contains(t, out, "b.js (1 lex error)\n")
	assert.Contains(t, out, `b.js:1:3  invalid  "@"`)
	assert.Contains(t, out, "  b.js:1:3  error  ")
	assert.Contains(t, out, "        y @ z\n          ^\n")
	assert.NotContains(t, out, `"\n"`, "line terminators are hidden by default")
	assert.True(t, strings.HasSuffix(out, "1 lex error in 1 file, 14 tokens in 2 files\n"))
}

func TestTextRenderer_Whitespace(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{
		Format:            reporter.FormatText,
		IncludeWhitespace: true,
	}, buildResult(t, fixture{path: "a.js", content: "a\n"}))

	assert.Contains(t, out, `a.js:1:2  lineTerminator  "\n"`)
}

func TestTextRenderer_NoFiles(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{})
	assert.Equal(t, "No files to lex.\n", out)
	assert.Zero(t, count)
}

func TestTextRenderer_FileErrors(t *testing.T) {
	t.Parallel()

	result := buildResult(t, fixture{path: "gone.js", err: errors.New("read failed")})
	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, result)

	assert.Contains(t, out, "gone.js: error: read failed\n")
	assert.Contains(t, out, "1 file failed")
	assert.Zero(t, count)
}

func TestTableRenderer(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatTable, TermWidth: 100}, twoFiles(t))

	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, `"var"`)
	assert.Contains(t, out, "decimalLiteral")
	assert.Contains(t, out, "b.js:1:3  error  ")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 100, line)
	}
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON}, twoFiles(t))

	var decoded struct {
		Version   string `json:"version"`
		Tokens    []map[string]any
		LexErrors []struct {
			FilePath string `json:"filePath"`
			Line     int    `json:"line"`
			Column   int    `json:"column"`
			Preview  string `json:"preview"`
		} `json:"lexErrors"`
		Summary struct {
			Files     int `json:"filesScanned"`
			Tokens    int `json:"tokens"`
			LexErrors int `json:"lexErrors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	assert.Len(t, decoded.Tokens, 8)
	assert.Equal(t, 2, decoded.Summary.Files)
	assert.Equal(t, 14, decoded.Summary.Tokens)
	assert.Equal(t, 1, decoded.Summary.LexErrors)
	require.Len(t, decoded.LexErrors, 1)
	assert.Equal(t, "b.js", decoded.LexErrors[0].FilePath)
	assert.Equal(t, 1, decoded.LexErrors[0].Line)
	assert.Equal(t, 3, decoded.LexErrors[0].Column)
	assert.Equal(t, "@ z", decoded.LexErrors[0].Preview)
	assert.Contains(t, out, "\n  \"", "indented by default")
}

func TestJSONRenderer_CompactEmpty(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, &runner.Result{})

	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"summary":{"filesScanned":0`)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &top))
	assert.NotContains(t, top, "tokens", "no token list without tokens")
	assert.Contains(t, top, "summary")
}

func TestSARIFRenderer(t *testing.T) {
	t.Parallel()

	result := twoFiles(t)
	result.Files = append(result.Files, runner.FileOutcome{Path: "dir/c.js", Error: errors.New("permission denied")})

	out, _ := report(t, reporter.Options{Format: reporter.FormatSARIF, ToolVersion: "1.2.3"}, result)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "jslex", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 2)

	require.Len(t, run.Results, 2)
	lexResult := run.Results[0]
	assert.Equal(t, reporter.RuleLexError, lexResult.RuleID)
	assert.Equal(t, "error", lexResult.Level)
	location := lexResult.Locations[0].PhysicalLocation
	assert.Equal(t, "b.js", location.ArtifactLocation.URI)
	require.NotNil(t, location.Region)
	assert.Equal(t, 1, location.Region.StartLine)
	assert.Equal(t, 3, location.Region.StartColumn)

	fileResult := run.Results[1]
	assert.Equal(t, reporter.RuleFileError, fileResult.RuleID)
	assert.Equal(t, "permission denied", fileResult.Message.Text)
	assert.Equal(t, "dir/c.js", fileResult.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Nil(t, fileResult.Locations[0].PhysicalLocation.Region)
}

func TestSummaryRenderer(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatSummary}, twoFiles(t))

	assert.Contains(t, out, "Token Kinds")
	assert.Contains(t, out, "Files\n")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "punctuator")
	assert.Contains(t, out, "Lexing finished with errors")
	assert.NotContains(t, out, `"var"`, "no per-token output")
}

func TestSummaryRenderer_NoFiles(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatSummary}, &runner.Result{})
	assert.Equal(t, "No files to lex.\n", out)
}

func TestHighlightReporter(t *testing.T) {
	t.Parallel()

	t.Run("single file is copied verbatim", func(t *testing.T) {
		t.Parallel()

		const src = "const re = /a+/g; // done\n"
		out, count := report(t, reporter.Options{Format: reporter.FormatHighlight},
			buildResult(t, fixture{path: "a.js", content: src}))
		assert.Equal(t, src, out)
		assert.Zero(t, count)
	})

	t.Run("multiple files get headers", func(t *testing.T) {
		t.Parallel()

		var errBuf bytes.Buffer
		out, count := report(t, reporter.Options{Format: reporter.FormatHighlight, ErrorWriter: &errBuf}, twoFiles(t))

		assert.Equal(t, "a.js\nvar x = 1;\nb.js (1 lex error)\ny @ z\n", out)
		assert.Equal(t, 1, count)
		assert.Contains(t, errBuf.String(), "b.js:1:3  error")
	})

	t.Run("markdown code blocks", func(t *testing.T) {
		t.Parallel()

		out, _ := report(t, reporter.Options{Format: reporter.FormatHighlight},
			buildResult(t, fixture{path: "doc.md", content: "# T\n\n```js\nlet a;\n```\n"}))
		assert.Equal(t, "doc.md:4 (javascript)\nlet a;\n", out)
	})

	t.Run("color", func(t *testing.T) {
		t.Parallel()

		const src = "if (x) { y = /re/ }\n"
		out, _ := report(t, reporter.Options{Format: reporter.FormatHighlight, Color: "always"},
			buildResult(t, fixture{path: "a.js", content: src}))
		assert.Equal(t, src, ansi.Strip(out))
	})
}

package runner_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jslex/pkg/combinator"
	"github.com/yaklabco/jslex/pkg/config"
	"github.com/yaklabco/jslex/pkg/cursor"
	"github.com/yaklabco/jslex/pkg/runner"
)

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasLexErrors())
}

func TestRunner_Run_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"app.js": "var x = 1;\n"})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	file := result.Files[0]
	require.NoError(t, file.Error)
	require.Len(t, file.Sources, 1)
	assert.Equal(t, 9, file.TokenCount())

	stats := result.Stats
	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Equal(t, 1, stats.SourcesScanned)
	assert.Equal(t, 9, stats.TokensTotal)
	assert.Equal(t, 1, stats.TokensByKind["keyword"])
	assert.Equal(t, 1, stats.TokensByKind["identifier"])
	assert.Equal(t, 3, stats.TokensByKind["whitespace"])
	assert.Equal(t, 1, stats.TokensByKind["lineTerminator"])
	assert.Equal(t, 2, stats.TokensByKind["punctuator"])
	assert.Equal(t, 1, stats.TokensByKind["numeric"])
	assert.Zero(t, stats.LexErrors)
}

func TestRunner_Run_MarkdownSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md": "# Title\n\n```js\nlet a = b / c;\n```\n\n```python\nprint(1)\n```\n\n```javascript\nx = /re/g\n```\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	file := result.Files[0]
	require.Len(t, file.Sources, 2)
	assert.Equal(t, 4, file.Sources[0].Source.Line)
	assert.Equal(t, 12, file.Sources[1].Source.Line)

	var types []string
	for _, span := range file.Sources[1].Scan.Spans {
		types = append(types, span.Type())
	}
	assert.Contains(t, types, "regexLiteral")

	// Offsets map back into the file.
	first := file.Sources[0]
	span := first.Scan.Spans[0]
	offset := first.Source.FileOffset(span.StartOffset)
	assert.Equal(t, "let", string(file.Content[offset:offset+span.Length]))
	line, col := file.Lines.Position(offset)
	assert.Equal(t, 4, line)
	assert.Equal(t, 1, col)
}

func TestRunner_Run_LexErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"bad.js":  "a @ b # c\n",
		"good.js": "ok();\n",
	})

	tests := []struct {
		name          string
		recoverErrors bool
		lexErrors     int
		invalid       []string
	}{
		{name: "stop at first error", recoverErrors: false, lexErrors: 1, invalid: []string{"@ b # c\n"}},
		{name: "recover", recoverErrors: true, lexErrors: 2, invalid: []string{"@", "#"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Recover = &testCase.recoverErrors

			result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
			require.NoError(t, err)

			assert.True(t, result.HasLexErrors())
			assert.Equal(t, testCase.lexErrors, result.Stats.LexErrors)
			assert.Equal(t, 1, result.Stats.FilesWithLexErrors)
			assert.Equal(t, len(testCase.invalid), result.Stats.InvalidSpans)

			require.Len(t, result.Files, 2)
			bad := result.Files[0]
			assert.Equal(t, "bad.js", filepath.Base(bad.Path))

			var invalid []string
			for _, span := range bad.Sources[0].Scan.Spans {
				if span.Invalid {
					invalid = append(invalid, span.Text)
				}
			}
			assert.Equal(t, testCase.invalid, invalid)
		})
	}
}

func TestRunner_Run_ContextModes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "a/b/g"})

	tests := []struct {
		mode    config.ContextMode
		regexes int
	}{
		{mode: config.ContextAuto, regexes: 0},
		{mode: config.ContextDivision, regexes: 0},
		{mode: config.ContextRegex, regexes: 1},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.mode), func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Context = testCase.mode

			result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
			require.NoError(t, err)
			assert.Equal(t, testCase.regexes, result.Stats.TokensByKind["regex"])
		})
	}
}

func TestRunner_Run_InvalidContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": ""})

	cfg := config.NewConfig()
	cfg.Context = "sideways"

	_, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestRunner_Run_Stdin(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{runner.StdinPath},
		Stdin:      strings.NewReader("return /x/;"),
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	file := result.Files[0]
	assert.Equal(t, runner.StdinName, file.Path)
	assert.Equal(t, 1, result.Stats.TokensByKind["regex"])
	assert.Equal(t, "return /x/;", string(file.Content))
}

func TestRunner_Run_ExtensionlessFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"tool":  "#!/usr/bin/env node\nrun();\n",
		"build": "#!/bin/sh\necho hi\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"tool", "build"},
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.True(t, result.Files[0].Skipped, "shell script is skipped")
	assert.False(t, result.Files[1].Skipped)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
}

func TestRunner_Run_GrammarDefect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "y"})

	b := combinator.NewBuilder()
	b.Define("elementAssumingDivision", combinator.Optional(combinator.Literal("x")))
	b.Define("elementAssumingRegex", combinator.Optional(combinator.Literal("x")))
	g, err := b.Build()
	require.NoError(t, err)

	result, err := (&runner.Runner{Grammar: g}).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	var violation *cursor.InvariantViolation
	require.ErrorAs(t, result.Files[0].Error, &violation)
	assert.True(t, result.HasFileErrors())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 40 {
		files[fmt.Sprintf("pkg%d/file%02d.js", i%4, i)] = fmt.Sprintf("var v%d = %d / 2; // %d\n", i, i, i)
	}
	writeTree(t, dir, files)

	serial, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].TokenCount(), parallel.Files[i].TokenCount())
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "", "b.js": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jslex/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.ContextAuto, result.Config.Context)
	assert.Equal(t, config.DefaultTabWidth, result.Config.TabWidth)
	assert.True(t, result.Config.MarkdownEnabled())
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jslex.yml"), `
context: division
tab_width: 8
markdown:
  enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, config.ContextDivision, result.Config.Context)
	assert.Equal(t, 8, result.Config.TabWidth)
	assert.False(t, result.Config.MarkdownEnabled())
	assert.Equal(t, config.FlavorGFM, result.Config.Markdown.Flavor, "unset keys keep defaults")
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigSearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".jslex.yml"), "context: regex\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	nested := filepath.Join(repo, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, path)

	writeFile(t, filepath.Join(repo, ".jslex.yaml"), "context: regex\n")
	path, err = FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, ".jslex.yaml"), path)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jslex.yml"), "context: division\ntab_width: 2\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "context: regex\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ContextRegex, result.Config.Context, "explicit beats project")
	assert.Equal(t, 2, result.Config.TabWidth, "project keys survive")
	assert.Equal(t, customPath, result.Paths.Explicit)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jslex.yml"), "context: division\nrecover: true\n")

	disabled := false
	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Context: config.ContextRegex,
		Recover: &disabled,
		Jobs:    8,
		Format:  config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ContextRegex, result.Config.Context)
	assert.False(t, result.Config.RecoverEnabled(), "CLI can switch recover off")
	assert.Equal(t, 8, result.Config.Jobs)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "context", content: "context: slash\n", field: "context"},
		{name: "flavor", content: "markdown:\n  flavor: rst\n", field: "markdown.flavor"},
		{name: "tab width", content: "tab_width: 99\n", field: "tab_width"},
		{name: "ignore glob", content: "ignore: ['[']\n", field: "ignore[0]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".jslex.yml")
			writeFile(t, path, testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, testCase.field, validationErr.Field)
			assert.Equal(t, path, validationErr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jslex.yml"), "context: [\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jslex.yml"), "context: division\n")

	t.Setenv("JSLEX_CONTEXT", "REGEX")
	t.Setenv("JSLEX_RECOVER", "1")
	t.Setenv("JSLEX_IGNORE", "dist/**, build/**")
	t.Setenv("JSLEX_MARKDOWN_ENABLED", "false")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.ContextRegex, result.Config.Context, "env beats project")
	assert.True(t, result.Config.RecoverEnabled())
	assert.Equal(t, []string{"dist/**", "build/**"}, result.Config.Ignore)
	assert.False(t, result.Config.MarkdownEnabled())
}

func TestLoad_EnvTurnsDetectOff(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".jslex.yml"), "markdown:\n  detect: true\n")

	opts := isolated(tmpDir)
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, result.Config.DetectEnabled())

	t.Setenv("JSLEX_MARKDOWN_DETECT", "false")
	opts.IgnoreEnv = false

	result, err = Load(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Config.DetectEnabled(), "env false beats project true")

	enabled := true
	opts.CLIConfig = &config.Config{Markdown: config.MarkdownConfig{Detect: &enabled}}
	result, err = Load(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Config.DetectEnabled(), "CLI beats env")
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("JSLEX_TAB_WIDTH", "wide")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSLEX_TAB_WIDTH")
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "JSLEX_MARKDOWN_FLAVOR", GetEnvVarName("markdown.flavor"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	for _, v := range vars {
		assert.NotEmpty(t, v.Description, v.Name)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	enabled := true
	base := config.NewConfig()
	layer := &config.Config{Ignore: []string{"a/**"}, Markdown: config.MarkdownConfig{Languages: []string{"jsx"}}}
	top := &config.Config{TabWidth: 2, Recover: &enabled, Strict: true}

	merged := MergeAll(base, layer, top)

	assert.Equal(t, 2, merged.TabWidth)
	assert.True(t, merged.RecoverEnabled())
	assert.True(t, merged.Strict)
	assert.Equal(t, []string{"a/**"}, merged.Ignore)
	assert.Equal(t, []string{"jsx"}, merged.Markdown.Languages)
	assert.Equal(t, config.ContextAuto, merged.Context)

	merged.Ignore[0] = "changed"
	assert.Equal(t, "a/**", layer.Ignore[0], "merge does not alias inputs")
	assert.False(t, base.RecoverEnabled())

	assert.Nil(t, MergeAll())
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{"js"}
	cfg.Markdown.Languages = []string{"no-such-language-at-all"}

	result := Validate(cfg)
	assert.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	assert.Len(t, result.Warnings, 2)
	assert.Len(t, result.AllMessages(), 2)
	assert.Contains(t, result.AllMessages()[0], "warning: extensions[0]")
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "context", Message: "bad", FilePath: "/x/.jslex.yml"}
	assert.Equal(t, "/x/.jslex.yml: context: bad", err.Error())
}

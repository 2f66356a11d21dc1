package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jslex/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "jslex", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"lex", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}

	match, _, err := cmd.Find([]string{"rules", "match"})
	require.NoError(t, err)
	assert.Equal(t, "match", match.Name())
}

func TestLexCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lexCmd, _, err := cmd.Find([]string{"lex"})
	require.NoError(t, err)

	for _, flagName := range []string{
		"format",
		"context",
		"tab-width",
		"recover",
		"jobs",
		"ignore",
		"ext",
		"no-markdown",
		"flavor",
		"lang",
		"detect",
		"output",
		"strict",
		"whitespace",
		"no-context",
		"no-summary",
		"compact",
	} {
		assert.NotNil(t, lexCmd.Flags().Lookup(flagName), "expected flag %q on lex", flagName)
	}

	formatFlag := lexCmd.Flags().Lookup("format")
	assert.Equal(t, "text", formatFlag.DefValue)
	assert.Contains(t, formatFlag.Usage, "highlight")
	assert.Equal(t, "4", lexCmd.Flags().Lookup("tab-width").DefValue)
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "expected global flag %q", flagName)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	})
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestLexCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lexCmd, _, err := cmd.Find([]string{"lex"})
	require.NoError(t, err)

	assert.NoError(t, lexCmd.Args(lexCmd, []string{"a.js", "-", "src/"}))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitLexErrors, cli.ExitCode(cli.ErrLexErrorsFound))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(&cli.ExitError{Code: cli.ExitIOError, Err: assert.AnError}))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(assert.AnError))
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--color", "never", "lex", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "jslex lex [paths...|-]")
	assert.Contains(t, help, "Flags:")
	assert.Contains(t, help, "--context string")
	assert.Contains(t, help, "Global Flags:")
	assert.NotContains(t, help, "\x1b[", "color never disables styling")
}

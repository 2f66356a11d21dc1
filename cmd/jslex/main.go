// Package main is the entry point for the jslex CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/jslex/internal/cli"
	"github.com/yaklabco/jslex/internal/logging"
)

// Build-time variables set by the stavefile via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrLexErrorsFound) {
		// Lex errors were already reported; the exit code is the signal.
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jslex/internal/configloader"
	"github.com/yaklabco/jslex/pkg/runner"
)

// Exit codes for jslex.
const (
	// ExitSuccess indicates successful execution with no lex errors.
	ExitSuccess = 0

	// ExitLexErrors indicates lexing completed but some input did not tokenize.
	ExitLexErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrLexErrorsFound is returned when lex errors decide the exit status.
var ErrLexErrorsFound = errors.New("lex errors found")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// usageArgs marks argument validation failures as invalid usage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withExitCode(ExitInvalidUsage, validate(cmd, args))
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.Is(err, ErrLexErrorsFound):
		return ExitLexErrors
	case errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a lex run.
//
// Lex errors fail the run unless recovery was on; strict makes recovered
// lex errors fail it too. Unreadable files fail it regardless.
func ExitCodeFromResult(result *runner.Result, recovered, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFileErrors() {
		return ExitIOError
	}

	if result.HasLexErrors() && (!recovered || strict) {
		return ExitLexErrors
	}

	return ExitSuccess
}

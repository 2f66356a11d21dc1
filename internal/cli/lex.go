package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jslex/internal/configloader"
	"github.com/yaklabco/jslex/internal/logging"
	"github.com/yaklabco/jslex/pkg/config"
	"github.com/yaklabco/jslex/pkg/fsutil"
	"github.com/yaklabco/jslex/pkg/reporter"
	"github.com/yaklabco/jslex/pkg/runner"
)

type lexFlags struct {
	format     string
	context    string
	tabWidth   int
	recover    bool
	jobs       int
	ignore     []string
	extensions []string
	noMarkdown bool
	flavor     string
	languages  []string
	detect     bool
	output     string
	strict     bool
	whitespace bool
	noContext  bool
	noSummary  bool
	compact    bool
}

func newLexCommand(info BuildInfo) *cobra.Command {
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "lex [paths...|-]",
		Short: "Tokenize JavaScript files",
		Long:  lexLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd, args, flags, info)
		},
	}

	addLexFlags(cmd, flags)

	return cmd
}

const lexLongDescription = `Tokenize JavaScript files and report every token.

By default, lexes all .js, .mjs and .cjs files in the current directory and
subdirectories, plus the JavaScript code blocks of .md and .markdown files.
Specify paths to lex specific files or directories, or - for standard input.

Examples:
  jslex lex                       # Lex current directory
  jslex lex src/                  # Lex src directory
  jslex lex app.js                # Lex single file
  echo 'a / b' | jslex lex -      # Lex standard input
  jslex lex --recover             # Skip past lex errors and keep going
  jslex lex --context regex       # Always read '/' as a regex
  jslex lex --format highlight    # Print the source highlighted
  jslex lex --format json -o tokens.json`

func runLex(cmd *cobra.Command, args []string, flags *lexFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	cliCfg, err := lexFlagsToConfig(cmd, flags)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	for _, path := range loadResult.LoadedFrom {
		logger.Debug("loaded configuration", logging.FieldConfigSource, path)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	logger.Debug("configuration resolved",
		logging.FieldContext, cfg.Context,
		logging.FieldTabWidth, cfg.TabWidth,
		logging.FieldRecover, cfg.RecoverEnabled(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, format,
	)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Stdin:        cmd.InOrStdin(),
		Config:       cfg,
	}

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, errors.Join(errors.New("lex run failed"), err))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if cfg.Output != "" {
		out = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:            out,
		ErrorWriter:       cmd.ErrOrStderr(),
		Format:            format,
		Color:             colorMode,
		ShowContext:       !flags.noContext,
		ShowSummary:       !flags.noSummary,
		GroupByFile:       true,
		Compact:           flags.compact,
		IncludeWhitespace: flags.whitespace,
		WorkingDir:        workDir,
		ToolVersion:       info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if cfg.Output != "" {
		if err := fsutil.WriteAtomic(ctx, cfg.Output, buf.Bytes(), 0); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("write %s: %w", cfg.Output, err))
		}
		logger.Debug("wrote report", logging.FieldOutput, cfg.Output)
	}

	switch exitCode := ExitCodeFromResult(result, cfg.RecoverEnabled(), cfg.Strict); exitCode {
	case ExitSuccess:
		return nil
	case ExitLexErrors:
		return ErrLexErrorsFound
	default:
		return withExitCode(exitCode, fmt.Errorf("%d files could not be lexed", result.Stats.FilesErrored))
	}
}

// lexFlagsToConfig builds the CLI configuration layer. Only flags the user
// set are copied so they do not mask config files and the environment.
func lexFlagsToConfig(cmd *cobra.Command, flags *lexFlags) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return nil, err
		}
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("context") {
		cfg.Context = config.ContextMode(flags.context)
		if !cfg.Context.IsValid() {
			return nil, fmt.Errorf("invalid context %q: must be division, regex, or auto", flags.context)
		}
	}
	if changed("tab-width") {
		if flags.tabWidth <= 0 {
			return nil, fmt.Errorf("invalid tab width %d: must be positive", flags.tabWidth)
		}
		cfg.TabWidth = flags.tabWidth
	}
	if changed("recover") {
		recoverErrors := flags.recover
		cfg.Recover = &recoverErrors
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if changed("no-markdown") {
		enabled := !flags.noMarkdown
		cfg.Markdown.Enabled = &enabled
	}
	if changed("flavor") {
		cfg.Markdown.Flavor = config.Flavor(flags.flavor)
	}
	if changed("lang") {
		cfg.Markdown.Languages = flags.languages
	}
	if changed("detect") {
		detect := flags.detect
		cfg.Markdown.Detect = &detect
	}
	cfg.Strict = flags.strict
	cfg.Output = flags.output

	return cfg, nil
}

func addLexFlags(cmd *cobra.Command, flags *lexFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text",
		"output format: text, table, json, sarif, summary, highlight")
	cmd.Flags().StringVar(&flags.context, "context", "auto", "how '/' is read: division, regex, auto")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", config.DefaultTabWidth, "tab stop used for columns")
	cmd.Flags().BoolVar(&flags.recover, "recover", false, "skip one character after a lex error and keep lexing")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "JavaScript file extensions (default .js,.mjs,.cjs)")
	cmd.Flags().BoolVar(&flags.noMarkdown, "no-markdown", false, "do not lex code blocks in Markdown files")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.languages, "lang", nil, "extra code block languages treated as JavaScript")
	cmd.Flags().BoolVar(&flags.detect, "detect", false, "classify untagged code blocks by content")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail on lex errors even when recovering")
	cmd.Flags().BoolVar(&flags.whitespace, "whitespace", false, "list whitespace and line terminator tokens")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context under lex errors")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON and SARIF output")
}

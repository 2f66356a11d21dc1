package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Lexing.
	FieldContext  = "context"
	FieldTabWidth = "tab_width"
	FieldRecover  = "recover"
	FieldJobs     = "jobs"
	FieldSources  = "sources"
	FieldLang     = "lang"
	FieldOffset   = "offset"
	FieldRule     = "rule"
	FieldToken    = "token"

	// Statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldTokensTotal     = "tokens_total"
	FieldLexErrors       = "lex_errors"
	FieldElapsed         = "elapsed"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Configuration.
	FieldConfigSource = "config_source"
	FieldFormat       = "format"
)

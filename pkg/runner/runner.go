package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/jslex/internal/logging"
	"github.com/yaklabco/jslex/pkg/combinator"
	"github.com/yaklabco/jslex/pkg/config"
	"github.com/yaklabco/jslex/pkg/fsutil"
	"github.com/yaklabco/jslex/pkg/highlight"
	"github.com/yaklabco/jslex/pkg/langdetect"
	"github.com/yaklabco/jslex/pkg/source"
)

// Runner tokenizes files on a worker pool.
type Runner struct {
	// Grammar replaces the default JavaScript grammar when set.
	Grammar *combinator.Grammar
}

// New creates a Runner that uses the default grammar.
func New() *Runner {
	return &Runner{}
}

// job is a discovered path plus, for standard input, its content.
type job struct {
	path    string
	content []byte
	stdin   bool
}

// Run discovers files under opts.Paths and tokenizes them concurrently.
// Outcomes are returned in discovery order regardless of the number of
// workers. A cancelled context stops the run and is returned wrapped
// together with the outcomes gathered so far.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs, err := r.prepare(files, opts)
	if err != nil {
		return nil, err
	}

	cfg := opts.effectiveConfig()
	scanOpts, err := r.scanOptions(cfg)
	if err != nil {
		return nil, err
	}
	splitOpts := splitOptions(cfg)

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(jobs))

	workCh := make(chan int)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				outcome := r.process(ctx, jobs[i], splitOpts, scanOpts)
				select {
				case <-ctx.Done():
					return
				case outCh <- indexedOutcome{index: i, outcome: outcome}:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for i := range jobs {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]*FileOutcome, len(jobs))
	for out := range outCh {
		outcomes[out.index] = &out.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldTokensTotal, result.Stats.TokensTotal,
		logging.FieldLexErrors, result.Stats.LexErrors,
		logging.FieldElapsed, time.Since(start),
	)

	return result, nil
}

type indexedOutcome struct {
	index   int
	outcome FileOutcome
}

// prepare turns discovered paths into jobs, reading standard input up front
// so that no worker blocks on it.
func (r *Runner) prepare(files []string, opts Options) ([]job, error) {
	jobs := make([]job, len(files))
	for i, path := range files {
		if path != StdinPath {
			jobs[i] = job{path: path}
			continue
		}

		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		content, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		jobs[i] = job{path: StdinName, content: content, stdin: true}
	}
	return jobs, nil
}

func (r *Runner) scanOptions(cfg *config.Config) (highlight.Options, error) {
	mode, err := highlight.ParseMode(string(cfg.Context))
	if err != nil {
		return highlight.Options{}, fmt.Errorf("context %q: %w", cfg.Context, err)
	}
	return highlight.Options{
		TabWidth: cfg.TabWidth,
		Mode:     mode,
		Recover:  cfg.RecoverEnabled(),
		Grammar:  r.Grammar,
	}, nil
}

func splitOptions(cfg *config.Config) source.Options {
	return source.Options{
		Markdown:  cfg.MarkdownEnabled(),
		Flavor:    string(cfg.Markdown.Flavor),
		Languages: cfg.Markdown.Languages,
		Detect:    cfg.DetectEnabled(),
	}
}

// process reads, splits and scans one file.
func (r *Runner) process(ctx context.Context, j job, splitOpts source.Options, scanOpts highlight.Options) FileOutcome {
	ctx = logging.WithFile(ctx, j.path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: j.path, Content: j.content}

	if !j.stdin {
		content, err := fsutil.ReadFile(ctx, j.path)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Content = content

		if filepath.Ext(j.path) == "" && langdetect.FromFilename(j.path, content) != langdetect.JavaScript {
			logger.Debug("skipping file that is not JavaScript")
			outcome.Skipped = true
			return outcome
		}
	}

	outcome.Lines = source.NewLineIndex(outcome.Content)

	sources, err := source.Split(ctx, j.path, outcome.Content, splitOpts)
	if err != nil {
		outcome.Error = fmt.Errorf("split %s: %w", j.path, err)
		return outcome
	}

	outcome.Sources = make([]SourceOutcome, 0, len(sources))
	for _, src := range sources {
		scan, err := highlight.Scan(src.Text, scanOpts)
		if err != nil {
			outcome.Error = fmt.Errorf("%s:%d: %w", j.path, src.Line, err)
			return outcome
		}
		outcome.Sources = append(outcome.Sources, SourceOutcome{Source: src, Scan: scan})
	}

	logger.Debug("tokenized file",
		logging.FieldSources, len(sources),
		logging.FieldLexErrors, outcome.LexErrorCount(),
	)

	return outcome
}

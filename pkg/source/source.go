// Package source splits input files into the JavaScript sources jslex
// tokenizes: the whole file for JavaScript files, and each JavaScript fenced
// code block for Markdown files.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/jslex/pkg/langdetect"
)

// Kind tells whether a source is a whole file or a Markdown code block.
type Kind string

const (
	KindFile      Kind = "file"
	KindCodeBlock Kind = "code-block"
)

// Flavor names for Markdown parsing.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options controls how files are split into sources.
type Options struct {
	// Markdown enables code block extraction for Markdown files.
	// When false, Markdown files yield no sources.
	Markdown bool

	// Flavor is the Markdown flavor: "commonmark" or "gfm".
	Flavor string

	// Languages lists extra fence info strings treated as JavaScript.
	Languages []string

	// Detect classifies untagged and indented code blocks by content.
	Detect bool
}

// Source is a span of JavaScript text inside a file.
type Source struct {
	// Path is the file the source was read from.
	Path string

	// Kind is KindFile or KindCodeBlock.
	Kind Kind

	// Lang is the resolved language name.
	Lang string

	// Info is the raw fence info string of a code block.
	Info string

	// Offset is the file offset of the first byte of Text.
	Offset int

	// Line is the 1-based file line of the first byte of Text.
	Line int

	// Text is the JavaScript source.
	Text string

	// segments maps Text offsets back to the file when the block's lines
	// are not contiguous in the file (block quotes, list items).
	segments []segment
}

// segment is a run of Text copied verbatim from the file.
type segment struct {
	textStart int
	fileStart int
}

// FileOffset maps an offset into Text to the matching offset in the file.
func (s *Source) FileOffset(textOffset int) int {
	if len(s.segments) == 0 {
		return s.Offset + textOffset
	}

	i := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].textStart > textOffset
	}) - 1
	if i < 0 {
		i = 0
	}
	seg := s.segments[i]
	return seg.fileStart + textOffset - seg.textStart
}

// Contiguous reports whether Text is a single run of the file.
func (s *Source) Contiguous() bool {
	return len(s.segments) <= 1
}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	default:
		return false
	}
}

// Split returns the JavaScript sources contained in a file.
func Split(ctx context.Context, path string, content []byte, opts Options) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("split cancelled: %w", err)
	}

	if !IsMarkdown(path) {
		return []Source{{
			Path: path,
			Kind: KindFile,
			Lang: langdetect.JavaScript,
			Line: 1,
			Text: string(content),
		}}, nil
	}

	if !opts.Markdown {
		return nil, nil
	}

	blocks, err := extractCodeBlocks(ctx, content, opts.Flavor)
	if err != nil {
		return nil, err
	}

	lines := NewLineIndex(content)
	var sources []Source
	for _, block := range blocks {
		if !opts.accepts(block) {
			continue
		}

		src := block.source(path)
		src.Line, _ = lines.Position(src.Offset)
		sources = append(sources, src)
	}

	return sources, nil
}

// accepts decides whether a code block holds JavaScript.
func (o Options) accepts(block codeBlock) bool {
	if block.info != "" {
		return langdetect.IsJavaScript(block.info, o.Languages...)
	}
	return o.Detect && langdetect.LooksLikeJavaScript(block.text())
}

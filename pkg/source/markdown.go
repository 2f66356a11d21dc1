package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/jslex/pkg/langdetect"
)

// codeBlock is a fenced or indented code block found in a Markdown file.
type codeBlock struct {
	info    string
	spans   []span
	content []byte
}

// span is a [start, stop) byte range of the file.
type span struct {
	start int
	stop  int
}

// text returns the block body.
func (b codeBlock) text() []byte {
	var out []byte
	for _, s := range b.spans {
		out = append(out, b.content[s.start:s.stop]...)
	}
	return out
}

// source converts the block to a Source.
func (b codeBlock) source(path string) Source {
	src := Source{
		Path:   path,
		Kind:   KindCodeBlock,
		Lang:   langdetect.JavaScript,
		Info:   b.info,
		Offset: b.spans[0].start,
		Text:   string(b.text()),
	}

	if len(b.spans) > 1 {
		textStart := 0
		for _, s := range b.spans {
			src.segments = append(src.segments, segment{textStart: textStart, fileStart: s.start})
			textStart += s.stop - s.start
		}
	}

	return src
}

// extractCodeBlocks parses content and returns its non-empty code blocks in
// document order.
func extractCodeBlocks(ctx context.Context, content []byte, flavor string) ([]codeBlock, error) {
	md := newGoldmarkInstance(flavorOrDefault(flavor))
	doc := md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var blocks []codeBlock
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if err := ctx.Err(); err != nil {
			return ast.WalkStop, fmt.Errorf("extract cancelled: %w", err)
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			info := ""
			if node.Info != nil {
				info = strings.TrimSpace(string(node.Info.Value(content)))
			}
			if block, ok := newCodeBlock(node.Lines(), content, info); ok {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			if block, ok := newCodeBlock(node.Lines(), content, ""); ok {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

// newCodeBlock collects the line segments of a block, merging runs that
// are adjacent in the file.
func newCodeBlock(lines *text.Segments, content []byte, info string) (codeBlock, bool) {
	block := codeBlock{info: info, content: content}

	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Stop <= seg.Start {
			continue
		}
		if n := len(block.spans); n > 0 && block.spans[n-1].stop == seg.Start {
			block.spans[n-1].stop = seg.Stop
			continue
		}
		block.spans = append(block.spans, span{start: seg.Start, stop: seg.Stop})
	}

	return block, len(block.spans) > 0
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}

package source

import "sort"

// LineInfo describes one line of a file.
type LineInfo struct {
	// StartOffset is the byte offset of the first character of the line.
	StartOffset int

	// NewlineStart is the offset of the line ending (\n or \r\n),
	// or the end of content for a final line without one.
	NewlineStart int

	// EndOffset is the offset just past the line ending.
	EndOffset int
}

// LineIndex converts between byte offsets and 1-based line/column pairs.
type LineIndex struct {
	content []byte
	lines   []LineInfo
}

// NewLineIndex builds the line table of content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func NewLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{content: content}
	if len(content) == 0 {
		return idx
	}

	lineStart := 0
	for i, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := i
		if i > 0 && content[i-1] == '\r' {
			newlineStart = i - 1
		}
		idx.lines = append(idx.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    i + 1,
		})
		lineStart = i + 1
	}

	// Last line, possibly empty after a trailing newline.
	idx.lines = append(idx.lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return idx
}

// LineCount returns the number of lines.
func (l *LineIndex) LineCount() int {
	return len(l.lines)
}

// Position converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Returns (0, 0) if the offset is out of range.
func (l *LineIndex) Position(offset int) (int, int) {
	if offset < 0 || offset > len(l.content) || len(l.lines) == 0 {
		return 0, 0
	}

	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}

	return lineIdx + 1, offset - l.lines[lineIdx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (l *LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(l.lines) || col < 1 {
		return 0, false
	}

	info := l.lines[line-1]
	offset := info.StartOffset + col - 1

	// Column may point just past the last character, for cursor positioning.
	if offset > info.NewlineStart {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (l *LineIndex) LineContent(line int) []byte {
	if line < 1 || line > len(l.lines) {
		return nil
	}

	info := l.lines[line-1]
	return l.content[info.StartOffset:info.NewlineStart]
}

// Package cursor tracks a read position over source text for backtracking matchers.
//
// A Cursor owns the offset, the row/column pair (with tab-stop expansion) and a
// LIFO stack of saved positions. Matchers bracket every attempt with Mark and
// then either Commit (keep the new position) or Rollback (restore the saved one).
package cursor

import (
	"fmt"
	"unicode/utf8"
)

// End is returned by Current when the cursor is past the last character.
const End rune = -1

// DefaultTabWidth is the tab stop used when none is configured.
const DefaultTabWidth = 4

// Position is a snapshot of the cursor location.
// Offset is a byte offset; Row and Col are 0-based.
type Position struct {
	Offset int
	Row    int
	Col    int
}

// InvariantViolation reports a defect in a grammar or in the engine itself,
// such as an unbalanced mark stack or a zero-width match where progress was required.
// It is never caused by the input text.
type InvariantViolation struct {
	Op     string
	Offset int
	Detail string
}

// Error implements the error interface.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("engine invariant violated in %s at offset %d: %s", e.Op, e.Offset, e.Detail)
}

// Cursor is a position over a string. It is not safe for concurrent use.
type Cursor struct {
	text     string
	pos      Position
	tabWidth int
	marks    []Position
	reach    int
}

// New creates a Cursor at the start of text.
// A tabWidth below 1 selects DefaultTabWidth.
func New(text string, tabWidth int) *Cursor {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &Cursor{
		text:     text,
		tabWidth: tabWidth,
	}
}

// Text returns the full source text.
func (c *Cursor) Text() string {
	return c.text
}

// TabWidth returns the configured tab stop.
func (c *Cursor) TabWidth() int {
	return c.tabWidth
}

// Current returns the character at the cursor, or End.
func (c *Cursor) Current() rune {
	if c.pos.Offset >= len(c.text) {
		return End
	}
	r, _ := utf8.DecodeRuneInString(c.text[c.pos.Offset:])
	return r
}

// AtEnd reports whether every character has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos.Offset >= len(c.text)
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.pos.Offset
}

// Position returns the current location.
func (c *Cursor) Position() Position {
	return c.pos
}

// Depth returns the number of outstanding marks.
func (c *Cursor) Depth() int {
	return len(c.marks)
}

// Reach returns the furthest offset the cursor has advanced to since the
// last ResetReach. It is used to point error messages at the place where
// matching actually broke down.
func (c *Cursor) Reach() int {
	return c.reach
}

// ResetReach sets the furthest-advance marker back to the current offset.
func (c *Cursor) ResetReach() {
	c.reach = c.pos.Offset
}

// Advance consumes the current character.
// A newline starts a new row, a tab moves to the next tab stop,
// anything else moves one column. Advancing at the end does nothing.
func (c *Cursor) Advance() {
	if c.pos.Offset >= len(c.text) {
		return
	}
	r, size := utf8.DecodeRuneInString(c.text[c.pos.Offset:])
	c.pos.Offset += size

	switch r {
	case '\n':
		c.pos.Row++
		c.pos.Col = 0
	case '\t':
		c.pos.Col = (c.pos.Col/c.tabWidth + 1) * c.tabWidth
	default:
		c.pos.Col++
	}

	if c.pos.Offset > c.reach {
		c.reach = c.pos.Offset
	}
}

// AdvanceTo advances until the cursor reaches offset.
// The target must lie ahead of the cursor on a character boundary
// previously visited by Advance; otherwise it panics with an InvariantViolation.
func (c *Cursor) AdvanceTo(offset int) {
	if offset < c.pos.Offset || offset > len(c.text) {
		panic(&InvariantViolation{
			Op:     "AdvanceTo",
			Offset: c.pos.Offset,
			Detail: fmt.Sprintf("target offset %d is behind the cursor or past the end", offset),
		})
	}
	for c.pos.Offset < offset {
		c.Advance()
	}
	if c.pos.Offset != offset {
		panic(&InvariantViolation{
			Op:     "AdvanceTo",
			Offset: c.pos.Offset,
			Detail: fmt.Sprintf("target offset %d is not on a character boundary", offset),
		})
	}
}

// Mark saves the current position.
func (c *Cursor) Mark() {
	c.marks = append(c.marks, c.pos)
}

// Rollback restores the most recently saved position and discards it.
func (c *Cursor) Rollback() {
	c.pos = c.pop("Rollback")
}

// Commit discards the most recently saved position and keeps the current one.
func (c *Cursor) Commit() {
	c.pop("Commit")
}

func (c *Cursor) pop(op string) Position {
	n := len(c.marks)
	if n == 0 {
		panic(&InvariantViolation{Op: op, Offset: c.pos.Offset, Detail: "mark stack underflow"})
	}
	saved := c.marks[n-1]
	c.marks = c.marks[:n-1]
	return saved
}

package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jslex/pkg/cursor"
)

func TestCursor_Current(t *testing.T) {
	t.Parallel()

	c := cursor.New("a\u00a0", 4)
	assert.Equal(t, 'a', c.Current())
	c.Advance()
	assert.Equal(t, '\u00a0', c.Current())
	c.Advance()
	assert.Equal(t, cursor.End, c.Current())
	assert.True(t, c.AtEnd())
	assert.Equal(t, len("a\u00a0"), c.Offset())
}

func TestCursor_AdvancePastEnd(t *testing.T) {
	t.Parallel()

	c := cursor.New("x", 4)
	c.Advance()
	c.Advance()
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, cursor.Position{Offset: 1, Row: 0, Col: 1}, c.Position())
}

func TestCursor_RowCol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		tabWidth int
		expected cursor.Position
	}{
		{"plain", "abc", 4, cursor.Position{Offset: 3, Row: 0, Col: 3}},
		{"newline resets column", "ab\ncd", 4, cursor.Position{Offset: 5, Row: 1, Col: 2}},
		{"tab from column zero", "\t", 4, cursor.Position{Offset: 1, Row: 0, Col: 4}},
		{"tab to next stop", "ab\t", 4, cursor.Position{Offset: 3, Row: 0, Col: 4}},
		{"tab on a stop", "abcd\t", 4, cursor.Position{Offset: 5, Row: 0, Col: 8}},
		{"tab width eight", "a\tb", 8, cursor.Position{Offset: 3, Row: 0, Col: 9}},
		{"carriage return counts as column", "a\r\nb", 4, cursor.Position{Offset: 4, Row: 1, Col: 1}},
		{"default tab width", "\t", 0, cursor.Position{Offset: 1, Row: 0, Col: cursor.DefaultTabWidth}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			c := cursor.New(testCase.text, testCase.tabWidth)
			for !c.AtEnd() {
				c.Advance()
			}
			assert.Equal(t, testCase.expected, c.Position())
		})
	}
}

func TestCursor_MarkRollbackCommit(t *testing.T) {
	t.Parallel()

	c := cursor.New("abc\ndef", 4)

	c.Mark()
	c.Advance()
	c.Advance()
	require.Equal(t, 1, c.Depth())

	c.Mark()
	c.Advance()
	c.Advance()
	assert.Equal(t, cursor.Position{Offset: 4, Row: 1, Col: 0}, c.Position())

	c.Rollback()
	assert.Equal(t, cursor.Position{Offset: 2, Row: 0, Col: 2}, c.Position())

	c.Commit()
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, 2, c.Offset())
}

func TestCursor_Underflow(t *testing.T) {
	t.Parallel()

	for _, op := range []func(*cursor.Cursor){(*cursor.Cursor).Rollback, (*cursor.Cursor).Commit} {
		c := cursor.New("abc", 4)

		func() {
			defer func() {
				recovered := recover()
				require.NotNil(t, recovered)
				violation, ok := recovered.(*cursor.InvariantViolation)
				require.True(t, ok, "expected *InvariantViolation, got %T", recovered)
				assert.Contains(t, violation.Error(), "underflow")
			}()
			op(c)
		}()
	}
}

func TestCursor_AdvanceTo(t *testing.T) {
	t.Parallel()

	c := cursor.New("ab\n\tc", 4)
	c.AdvanceTo(4)
	assert.Equal(t, cursor.Position{Offset: 4, Row: 1, Col: 4}, c.Position())

	assert.Panics(t, func() { c.AdvanceTo(1) })
}

func TestCursor_AdvanceToMidRune(t *testing.T) {
	t.Parallel()

	c := cursor.New("\u00a0x", 4)
	assert.Panics(t, func() { c.AdvanceTo(1) })
}

func TestCursor_Reach(t *testing.T) {
	t.Parallel()

	c := cursor.New("abcdef", 4)
	c.Mark()
	c.Advance()
	c.Advance()
	c.Advance()
	c.Rollback()

	assert.Equal(t, 0, c.Offset())
	assert.Equal(t, 3, c.Reach())

	c.ResetReach()
	assert.Equal(t, 0, c.Reach())
}

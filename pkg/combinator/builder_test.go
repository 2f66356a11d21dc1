package combinator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jslex/pkg/combinator"
	"github.com/yaklabco/jslex/pkg/cursor"
)

// parens builds a recursive grammar of balanced parentheses.
func parens(t *testing.T) *combinator.Grammar {
	t.Helper()

	b := combinator.NewBuilder()
	b.Define("group", combinator.Seq(
		combinator.Literal("("),
		combinator.Many(b.Ref("group")),
		combinator.Literal(")"),
	))
	b.Define("balanced", combinator.Many(b.Ref("group")))

	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilder_RecursiveGrammar(t *testing.T) {
	t.Parallel()

	g := parens(t)

	tests := []struct {
		input    string
		expected string
	}{
		{"()", "()"},
		{"(())()", "(())()"},
		{"(()", ""},
		{"(()))", "(())"},
		{"", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			el, ok, err := g.Match("balanced", testCase.input, 4)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, testCase.expected, el.Text())
			assert.Equal(t, "balanced", el.Type())
		})
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	t.Run("undefined", func(t *testing.T) {
		t.Parallel()

		b := combinator.NewBuilder()
		b.Define("a", b.Ref("missing"))
		_, err := b.Build()
		require.ErrorIs(t, err, combinator.ErrUndefinedRule)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		b := combinator.NewBuilder()
		b.Define("a", combinator.Literal("x"))
		b.Define("a", combinator.Literal("y"))
		_, err := b.Build()
		require.ErrorIs(t, err, combinator.ErrDuplicateRule)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		b := combinator.NewBuilder()
		b.Define("", combinator.Literal("x"))
		_, err := b.Build()
		require.ErrorIs(t, err, combinator.ErrEmptyRuleName)
	})

	t.Run("unknown rule on match", func(t *testing.T) {
		t.Parallel()

		g := parens(t)
		_, _, err := g.Match("nope", "()", 4)
		require.ErrorIs(t, err, combinator.ErrUndefinedRule)
	})
}

func TestBuilder_UseBeforeDefinitionPanics(t *testing.T) {
	t.Parallel()

	b := combinator.NewBuilder()
	ref := b.Ref("later")

	assert.PanicsWithError(t,
		`engine invariant violated in Match at offset 0: rule "later" used before it was defined`,
		func() { ref.Match(cursor.New("x", 4)) })
}

func TestElement_TypeChain(t *testing.T) {
	t.Parallel()

	b := combinator.NewBuilder()
	b.Define("letter", combinator.Char(combinator.Range('a', 'z')))
	b.DefineToken("name", combinator.Many1(b.Ref("letter")))
	b.DefineToken("number", combinator.Many1(combinator.Char(combinator.Range('0', '9'))))
	b.Define("atom", combinator.Alt(b.Ref("name"), b.Ref("number")))
	b.Define("item", b.Ref("atom"))
	g, err := b.Build()
	require.NoError(t, err)

	el, ok, err := g.Match("item", "abc1", 4)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "abc", el.Text())
	assert.Equal(t, "name", el.Type())
	assert.Equal(t, []string{"item", "atom", "name"}, el.SubTypes())
	assert.True(t, el.HasType("atom"))
	assert.False(t, el.HasType("letter"), "tokens hide their inner structure")
	assert.True(t, g.IsToken("name"))
	assert.False(t, g.IsToken("atom"))

	letter, ok, err := g.Match("letter", "q", 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "letter", letter.Type())
	assert.True(t, letter.IsLeaf())
}

func TestElement_ConcatenationStopsTypeChain(t *testing.T) {
	t.Parallel()

	b := combinator.NewBuilder()
	b.Define("digit", combinator.Char(combinator.Range('0', '9')))
	b.Define("pair", combinator.Seq(b.Ref("digit"), b.Ref("digit")))
	g, err := b.Build()
	require.NoError(t, err)

	el, ok, err := g.Match("pair", "42", 4)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "pair", el.Type())
	assert.Equal(t, []string{"pair"}, el.SubTypes())
	require.Len(t, el.Children(), 2)
	assert.Equal(t, "digit", el.Children()[1].Type())
	assert.Equal(t, 1, el.Children()[1].Start())
}

func TestElement_Dump(t *testing.T) {
	t.Parallel()

	g := parens(t)
	el, ok, err := g.Match("group", "()", 4)
	require.NoError(t, err)
	require.True(t, ok)

	var sb strings.Builder
	require.NoError(t, el.Dump(&sb))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `group [0,2) "()"`, lines[0])
	assert.Equal(t, `  _ [0,1) "("`, lines[1])
	assert.Equal(t, `  _ [1,1) ""`, lines[2])
	assert.Equal(t, `  _ [1,2) ")"`, lines[3])
}

func TestGrammar_Names(t *testing.T) {
	t.Parallel()

	g := parens(t)
	assert.Equal(t, []string{"group", "balanced"}, g.Names())

	_, ok := g.Rule("group")
	assert.True(t, ok)
	assert.Panics(t, func() { g.MustRule("missing") })
}

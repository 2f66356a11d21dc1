package combinator

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jslex/pkg/cursor"
)

// Errors reported by Builder.Build.
var (
	ErrUndefinedRule = errors.New("rule referenced but never defined")
	ErrDuplicateRule = errors.New("rule defined more than once")
	ErrEmptyRuleName = errors.New("rule name is empty")
)

// cell is a late-bound named rule. References made before the definition
// share the same cell, which is what makes recursive grammars possible.
type cell struct {
	name    string
	token   bool
	rule    Rule
	defined bool
}

func (c *cell) Match(cur *cursor.Cursor) (*Element, bool) {
	if c.rule == nil {
		panic(&cursor.InvariantViolation{
			Op:     "Match",
			Offset: cur.Offset(),
			Detail: fmt.Sprintf("rule %q used before it was defined", c.name),
		})
	}

	el, ok := c.rule.Match(cur)
	if !ok {
		return nil, false
	}

	switch {
	case c.token:
		return &Element{
			name:  c.name,
			kind:  contentLeaf,
			text:  el.text,
			start: el.start,
			end:   el.end,
		}, true
	case el.name == "":
		el.name = c.name
		return el, true
	default:
		wrapped := newWrap(el)
		wrapped.name = c.name
		return wrapped, true
	}
}

// Builder collects named rule definitions and resolves references between them.
type Builder struct {
	cells map[string]*cell
	order []string
	errs  []error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{cells: make(map[string]*cell)}
}

func (b *Builder) lookup(name string) *cell {
	if c, ok := b.cells[name]; ok {
		return c
	}
	c := &cell{name: name}
	b.cells[name] = c
	b.order = append(b.order, name)
	return c
}

// Ref returns a rule that behaves like the rule eventually defined as name.
func (b *Builder) Ref(name string) Rule {
	if name == "" {
		b.errs = append(b.errs, ErrEmptyRuleName)
	}
	return b.lookup(name)
}

// Define binds name to rule and returns the named rule.
// Elements it produces carry name in their type chain.
func (b *Builder) Define(name string, rule Rule) Rule {
	return b.define(name, rule, false)
}

// DefineToken is like Define but collapses every match into a single leaf,
// so that name becomes the most specific type of the element.
func (b *Builder) DefineToken(name string, rule Rule) Rule {
	return b.define(name, rule, true)
}

func (b *Builder) define(name string, rule Rule, token bool) Rule {
	if name == "" {
		b.errs = append(b.errs, ErrEmptyRuleName)
	}

	c := b.lookup(name)
	if c.defined {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateRule, name))
		return c
	}

	c.rule = rule
	c.token = token
	c.defined = true
	return c
}

// Build checks that every referenced rule was defined exactly once and
// returns the finished grammar.
func (b *Builder) Build() (*Grammar, error) {
	errs := append([]error(nil), b.errs...)
	for _, name := range b.order {
		if !b.cells[name].defined {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUndefinedRule, name))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("build grammar: %w", errors.Join(errs...))
	}

	rules := make(map[string]*cell, len(b.cells))
	for name, c := range b.cells {
		rules[name] = c
	}

	return &Grammar{
		rules: rules,
		names: append([]string(nil), b.order...),
	}, nil
}

// Grammar is an immutable table of named rules. It is safe for concurrent use;
// every match needs its own cursor.
type Grammar struct {
	rules map[string]*cell
	names []string
}

// Rule returns the rule called name.
func (g *Grammar) Rule(name string) (Rule, bool) {
	c, ok := g.rules[name]
	if !ok {
		return nil, false
	}
	return c, true
}

// MustRule returns the rule called name and panics if it does not exist.
func (g *Grammar) MustRule(name string) Rule {
	r, ok := g.Rule(name)
	if !ok {
		panic(fmt.Sprintf("combinator: unknown rule %q", name))
	}
	return r
}

// IsToken reports whether name was defined with DefineToken.
func (g *Grammar) IsToken(name string) bool {
	c, ok := g.rules[name]
	return ok && c.token
}

// Names returns the rule names in first-mention order.
func (g *Grammar) Names() []string {
	return append([]string(nil), g.names...)
}

// Match applies the rule called name at the start of text. The element may
// cover only a prefix of text.
func (g *Grammar) Match(name, text string, tabWidth int) (*Element, bool, error) {
	rule, ok := g.Rule(name)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUndefinedRule, name)
	}
	el, matched := rule.Match(cursor.New(text, tabWidth))
	return el, matched, nil
}

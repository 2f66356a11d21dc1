// Package combinator implements a backtracking rule engine over a cursor.
//
// Rules are stateless values built once and shared. A rule either matches,
// returning an Element and leaving the cursor just past it, or fails and
// leaves the cursor exactly where it was. Disjunction picks the longest
// match; repetition and run rules munch maximally.
package combinator

import "github.com/yaklabco/jslex/pkg/cursor"

// Rule matches input at the cursor position.
type Rule interface {
	Match(c *cursor.Cursor) (*Element, bool)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(c *cursor.Cursor) (*Element, bool)

// Match calls f.
func (f RuleFunc) Match(c *cursor.Cursor) (*Element, bool) {
	return f(c)
}

type charRule struct {
	class CharClass
}

// Char matches one character accepted by class.
func Char(class CharClass) Rule {
	return charRule{class: class}
}

func (r charRule) Match(c *cursor.Cursor) (*Element, bool) {
	if !r.class.Test(c.Current()) {
		return nil, false
	}
	start := c.Offset()
	c.Advance()
	return newLeaf(c.Text(), start, c.Offset()), true
}

type literalRule struct {
	text string
}

// Literal matches text exactly.
func Literal(text string) Rule {
	return literalRule{text: text}
}

func (r literalRule) Match(c *cursor.Cursor) (*Element, bool) {
	start := c.Offset()
	c.Mark()
	for _, want := range r.text {
		if c.Current() != want {
			c.Rollback()
			return nil, false
		}
		c.Advance()
	}
	c.Commit()
	return newLeaf(c.Text(), start, c.Offset()), true
}

type seqRule struct {
	rules []Rule
}

// Seq matches every rule in order. If any of them fails the whole sequence
// fails and nothing is consumed.
func Seq(rules ...Rule) Rule {
	return seqRule{rules: rules}
}

func (r seqRule) Match(c *cursor.Cursor) (*Element, bool) {
	start := c.Offset()
	children := make([]*Element, 0, len(r.rules))

	c.Mark()
	for _, sub := range r.rules {
		el, ok := sub.Match(c)
		if !ok {
			c.Rollback()
			return nil, false
		}
		children = append(children, el)
	}
	c.Commit()

	return newConcat(c.Text(), start, c.Offset(), children), true
}

type altRule struct {
	rules []Rule
}

// Alt tries every alternative from the same position and keeps the one that
// consumed the most input. Ties go to the earliest alternative.
func Alt(rules ...Rule) Rule {
	return altRule{rules: rules}
}

func (r altRule) Match(c *cursor.Cursor) (*Element, bool) {
	var best *Element
	bestEnd := -1

	for _, sub := range r.rules {
		c.Mark()
		el, ok := sub.Match(c)
		if ok && c.Offset() > bestEnd {
			best = el
			bestEnd = c.Offset()
		}
		c.Rollback()
	}

	if best == nil {
		return nil, false
	}
	c.AdvanceTo(bestEnd)
	return newWrap(best), true
}

type manyRule struct {
	rule Rule
}

// Many matches rule zero or more times and never fails. An iteration that
// consumes nothing ends the loop.
func Many(rule Rule) Rule {
	return manyRule{rule: rule}
}

func (r manyRule) Match(c *cursor.Cursor) (*Element, bool) {
	start := c.Offset()
	var children []*Element

	for {
		before := c.Offset()
		el, ok := r.rule.Match(c)
		if !ok || c.Offset() == before {
			break
		}
		children = append(children, el)
	}

	return newConcat(c.Text(), start, c.Offset(), children), true
}

// Many1 matches rule one or more times.
func Many1(rule Rule) Rule {
	return Seq(rule, Many(rule))
}

type optionalRule struct {
	rule Rule
}

// Optional matches rule or nothing. It never fails.
func Optional(rule Rule) Rule {
	return optionalRule{rule: rule}
}

func (r optionalRule) Match(c *cursor.Cursor) (*Element, bool) {
	el, ok := r.rule.Match(c)
	if !ok {
		return newLeaf(c.Text(), c.Offset(), c.Offset()), true
	}
	return newWrap(el), true
}

type filterRule struct {
	rule Rule
	pred TextPred
}

// Filter matches rule and then requires pred to accept the matched text.
func Filter(rule Rule, pred TextPred) Rule {
	return filterRule{rule: rule, pred: pred}
}

func (r filterRule) Match(c *cursor.Cursor) (*Element, bool) {
	c.Mark()
	el, ok := r.rule.Match(c)
	if !ok || !r.pred.Test(el.Text()) {
		c.Rollback()
		return nil, false
	}
	c.Commit()
	return newWrap(el), true
}

type butNotRule struct {
	rule    Rule
	exclude Rule
}

// ButNot matches rule unless exclude matches exactly the same span.
func ButNot(rule, exclude Rule) Rule {
	return butNotRule{rule: rule, exclude: exclude}
}

func (r butNotRule) Match(c *cursor.Cursor) (*Element, bool) {
	c.Mark()
	el, ok := r.rule.Match(c)
	end := c.Offset()
	c.Rollback()
	if !ok {
		return nil, false
	}

	c.Mark()
	_, excluded := r.exclude.Match(c)
	excludedEnd := c.Offset()
	c.Rollback()
	if excluded && excludedEnd == end {
		return nil, false
	}

	c.AdvanceTo(end)
	return newWrap(el), true
}

type noneOfRule struct {
	rules []Rule
}

// NoneOf succeeds without consuming input when none of rules match here.
func NoneOf(rules ...Rule) Rule {
	return noneOfRule{rules: rules}
}

func (r noneOfRule) Match(c *cursor.Cursor) (*Element, bool) {
	for _, sub := range r.rules {
		c.Mark()
		_, ok := sub.Match(c)
		c.Rollback()
		if ok {
			return nil, false
		}
	}
	return newLeaf(c.Text(), c.Offset(), c.Offset()), true
}

type lookAheadRule struct {
	rule Rule
}

// LookAhead succeeds without consuming input when rule matches here.
func LookAhead(rule Rule) Rule {
	return lookAheadRule{rule: rule}
}

func (r lookAheadRule) Match(c *cursor.Cursor) (*Element, bool) {
	c.Mark()
	_, ok := r.rule.Match(c)
	c.Rollback()
	if !ok {
		return nil, false
	}
	return newLeaf(c.Text(), c.Offset(), c.Offset()), true
}

type greedyRunRule struct {
	class CharClass
	pred  TextPred
}

// GreedyRun consumes characters accepted by class for as long as the text
// read so far is accepted by pred. It fails when nothing was consumed.
// With a token table whose entries are closed under prefixes this is
// maximal munch over the table.
func GreedyRun(class CharClass, pred TextPred) Rule {
	return greedyRunRule{class: class, pred: pred}
}

func (r greedyRunRule) Match(c *cursor.Cursor) (*Element, bool) {
	src := c.Text()
	start := c.Offset()

	for r.class.Test(c.Current()) {
		c.Mark()
		c.Advance()
		if !r.pred.Test(src[start:c.Offset()]) {
			c.Rollback()
			break
		}
		c.Commit()
	}

	if c.Offset() == start {
		return nil, false
	}
	return newLeaf(src, start, c.Offset()), true
}

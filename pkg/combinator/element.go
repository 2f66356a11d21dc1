package combinator

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type contentKind uint8

const (
	contentLeaf contentKind = iota
	contentWrap
	contentConcat
)

// Element is the result of a successful match. Its content is either raw
// text (a leaf), exactly one child (a wrap) or an ordered list of children
// (a concatenation). Every element records the byte span it consumed.
type Element struct {
	name     string
	kind     contentKind
	text     string
	children []*Element
	start    int
	end      int
}

func newLeaf(src string, start, end int) *Element {
	return &Element{kind: contentLeaf, text: src[start:end], start: start, end: end}
}

func newWrap(child *Element) *Element {
	return &Element{
		kind:     contentWrap,
		text:     child.text,
		children: []*Element{child},
		start:    child.start,
		end:      child.end,
	}
}

func newConcat(src string, start, end int, children []*Element) *Element {
	return &Element{kind: contentConcat, text: src[start:end], children: children, start: start, end: end}
}

// Name returns the rule name attached to this element, or "" when the
// element was produced by an anonymous rule.
func (e *Element) Name() string {
	return e.name
}

// Text returns the exact source text consumed by the element.
func (e *Element) Text() string {
	return e.text
}

// Start returns the byte offset where the element begins.
func (e *Element) Start() int {
	return e.start
}

// End returns the byte offset just past the element.
func (e *Element) End() int {
	return e.end
}

// Len returns the byte length of the element.
func (e *Element) Len() int {
	return e.end - e.start
}

// IsLeaf reports whether the element holds raw text instead of children.
func (e *Element) IsLeaf() bool {
	return e.kind == contentLeaf
}

// Children returns the child elements. Leaves have none.
func (e *Element) Children() []*Element {
	return e.children
}

// Type returns the most specific named rule: the innermost name found by
// following single-child links from this element.
func (e *Element) Type() string {
	typ := e.name
	for cur := e; cur.kind == contentWrap; {
		cur = cur.children[0]
		if cur.name != "" {
			typ = cur.name
		}
	}
	return typ
}

// SubTypes returns the named rules along the single-child chain, outermost
// first. Anonymous links are skipped.
func (e *Element) SubTypes() []string {
	var chain []string
	for cur := e; ; cur = cur.children[0] {
		if cur.name != "" {
			chain = append(chain, cur.name)
		}
		if cur.kind != contentWrap {
			break
		}
	}
	return chain
}

// HasType reports whether name appears in the type chain.
func (e *Element) HasType(name string) bool {
	for cur := e; ; cur = cur.children[0] {
		if cur.name == name {
			return true
		}
		if cur.kind != contentWrap {
			return false
		}
	}
}

// String returns the element text.
func (e *Element) String() string {
	return e.text
}

// Dump writes an indented tree of the element, one node per line.
func (e *Element) Dump(w io.Writer) error {
	return e.dump(w, 0)
}

func (e *Element) dump(w io.Writer, depth int) error {
	name := e.name
	if name == "" {
		name = "_"
	}

	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s [%d,%d) %s\n", indent, name, e.start, e.end, strconv.Quote(e.text)); err != nil {
		return err
	}

	for _, child := range e.children {
		if err := child.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

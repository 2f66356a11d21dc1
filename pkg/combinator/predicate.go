package combinator

import (
	"slices"
	"strings"

	"github.com/yaklabco/jslex/pkg/cursor"
)

type classKind uint8

const (
	classAny classKind = iota
	classSet
	classRange
	classFunc
	classUnion
	classMinus
	classNot
)

// CharClass selects single characters. It is a closed set of variants built
// only through the constructors in this file; Test never accepts cursor.End.
type CharClass struct {
	kind   classKind
	set    string
	lo, hi rune
	fn     func(rune) bool
	parts  []CharClass
}

// AnyChar matches every character.
func AnyChar() CharClass {
	return CharClass{kind: classAny}
}

// Is matches exactly one character.
func Is(r rune) CharClass {
	return CharClass{kind: classSet, set: string(r)}
}

// OneOf matches any character contained in chars.
func OneOf(chars string) CharClass {
	return CharClass{kind: classSet, set: chars}
}

// Range matches characters in [lo, hi].
func Range(lo, hi rune) CharClass {
	return CharClass{kind: classRange, lo: lo, hi: hi}
}

// Func matches characters accepted by fn.
func Func(fn func(rune) bool) CharClass {
	return CharClass{kind: classFunc, fn: fn}
}

// Union matches characters accepted by any of classes.
func Union(classes ...CharClass) CharClass {
	return CharClass{kind: classUnion, parts: slices.Clone(classes)}
}

// Not matches characters rejected by c.
func (c CharClass) Not() CharClass {
	return CharClass{kind: classNot, parts: []CharClass{c}}
}

// Minus matches characters accepted by c and rejected by other.
func (c CharClass) Minus(other CharClass) CharClass {
	return CharClass{kind: classMinus, parts: []CharClass{c, other}}
}

// Test reports whether r belongs to the class.
func (c CharClass) Test(r rune) bool {
	if r == cursor.End {
		return false
	}
	return c.test(r)
}

func (c CharClass) test(r rune) bool {
	switch c.kind {
	case classAny:
		return true
	case classSet:
		return strings.ContainsRune(c.set, r)
	case classRange:
		return r >= c.lo && r <= c.hi
	case classFunc:
		return c.fn != nil && c.fn(r)
	case classUnion:
		for _, part := range c.parts {
			if part.test(r) {
				return true
			}
		}
		return false
	case classMinus:
		return c.parts[0].test(r) && !c.parts[1].test(r)
	case classNot:
		return !c.parts[0].test(r)
	default:
		return false
	}
}

type textKind uint8

const (
	textAny textKind = iota
	textIn
	textFunc
	textNot
)

// TextPred accepts or rejects matched text. Like CharClass it is a closed
// variant; constructors normalize their arguments once, at rule build time.
type TextPred struct {
	kind  textKind
	words map[string]struct{}
	fn    func(string) bool
	inner *TextPred
}

// AnyText accepts every text.
func AnyText() TextPred {
	return TextPred{kind: textAny}
}

// TextIn accepts text equal to one of words.
func TextIn(words ...string) TextPred {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return TextPred{kind: textIn, words: set}
}

// TextFunc accepts text for which fn returns true.
func TextFunc(fn func(string) bool) TextPred {
	return TextPred{kind: textFunc, fn: fn}
}

// Not inverts the predicate.
func (p TextPred) Not() TextPred {
	inner := p
	return TextPred{kind: textNot, inner: &inner}
}

// Test reports whether text satisfies the predicate.
func (p TextPred) Test(text string) bool {
	switch p.kind {
	case textAny:
		return true
	case textIn:
		_, ok := p.words[text]
		return ok
	case textFunc:
		return p.fn != nil && p.fn(text)
	case textNot:
		return !p.inner.Test(text)
	default:
		return false
	}
}

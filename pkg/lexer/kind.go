package lexer

import (
	"fmt"

	"github.com/yaklabco/jslex/pkg/jsgrammar"
)

// Kind is a coarse token classification derived from the type chain.
type Kind uint8

// Token kinds.
const (
	KindUnknown Kind = iota
	KindIdentifier
	KindKeyword
	KindFutureReserved
	KindNull
	KindBoolean
	KindNumeric
	KindString
	KindRegex
	KindPunctuator
	KindComment
	KindWhitespace
	KindLineTerminator
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindIdentifier:     "identifier",
	KindKeyword:        "keyword",
	KindFutureReserved: "futureReserved",
	KindNull:           "null",
	KindBoolean:        "boolean",
	KindNumeric:        "numeric",
	KindString:         "string",
	KindRegex:          "regex",
	KindPunctuator:     "punctuator",
	KindComment:        "comment",
	KindWhitespace:     "whitespace",
	KindLineTerminator: "lineTerminator",
}

var kindByRule = map[string]Kind{
	jsgrammar.Identifier:         KindIdentifier,
	jsgrammar.Keyword:            KindKeyword,
	jsgrammar.FutureReservedWord: KindFutureReserved,
	jsgrammar.NullLiteral:        KindNull,
	jsgrammar.BooleanLiteral:     KindBoolean,
	jsgrammar.NumericLiteral:     KindNumeric,
	jsgrammar.DecimalLiteral:     KindNumeric,
	jsgrammar.HexIntegerLiteral:  KindNumeric,
	jsgrammar.StringLiteral:      KindString,
	jsgrammar.RegexLiteral:       KindRegex,
	jsgrammar.Punctuator:         KindPunctuator,
	jsgrammar.DivPunctuator:      KindPunctuator,
	jsgrammar.Comment:            KindComment,
	jsgrammar.Whitespace:         KindWhitespace,
	jsgrammar.LineTerminator:     KindLineTerminator,
}

// KindOf classifies a type chain by its most specific known rule.
func KindOf(types []string) Kind {
	for i := len(types) - 1; i >= 0; i-- {
		if k, ok := kindByRule[types[i]]; ok {
			return k
		}
	}
	return KindUnknown
}

// Kinds returns every kind except KindUnknown, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := KindIdentifier; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsTrivia reports whether the kind carries no syntax:
// whitespace, line terminators and comments.
func (k Kind) IsTrivia() bool {
	return k == KindWhitespace || k == KindLineTerminator || k == KindComment
}

// IsLiteral reports whether the kind is a literal value.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindNull, KindBoolean, KindNumeric, KindString, KindRegex:
		return true
	default:
		return false
	}
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

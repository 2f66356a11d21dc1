// Package jsgrammar defines the ECMAScript lexical grammar as a table of
// named combinator rules.
//
// Identifier characters are ASCII only. Matching always reports raw source
// spans; escape sequences are recognized but never decoded.
package jsgrammar

import (
	"slices"
	"strings"
	"sync"

	c "github.com/yaklabco/jslex/pkg/combinator"
)

// Rule names used outside this package.
const (
	ElementAssumingDivision = "elementAssumingDivision"
	ElementAssumingRegex    = "elementAssumingRegex"

	Identifier         = "identifier"
	ReservedWord       = "reservedWord"
	Keyword            = "keyword"
	FutureReservedWord = "futureReservedWord"
	NullLiteral        = "nullLiteral"
	BooleanLiteral     = "booleanLiteral"
	NumericLiteral     = "numericLiteral"
	DecimalLiteral     = "decimalLiteral"
	HexIntegerLiteral  = "hexIntegerLiteral"
	StringLiteral      = "stringLiteral"
	RegexLiteral       = "regexLiteral"
	Punctuator         = "punctuator"
	DivPunctuator      = "divPunctuator"
	Comment            = "comment"
	Whitespace         = "whitespace"
	LineTerminator     = "lineTerminator"
	Token              = "token"
)

var keywords = strings.Fields(`break case catch continue debugger default delete do
	else finally for function if in instanceof new return switch this throw
	try typeof var void while with`)

var futureReservedWords = strings.Fields(`class const enum export extends import super`)

var punctuators = strings.Fields(`{ } ( ) [ ] . ; , < > <= >= == != === !== + - * % ++ --
	<< >> >>> & | ^ ! ~ && || ? : = += -= *= %= <<= >>= >>>= &= |= ^=`)

const (
	whitespaceChars = "\t\v\f \u00a0\ufeff\u1680\u180e" +
		"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a\u200b" +
		"\u202f\u205f\u3000"
	lineTerminatorChars = "\n\r\u2028\u2029"
	singleEscapeChars   = `'"\bfnrtv`
)

// Keywords returns the keyword list.
func Keywords() []string { return slices.Clone(keywords) }

// FutureReservedWords returns the future reserved word list.
func FutureReservedWords() []string { return slices.Clone(futureReservedWords) }

// Punctuators returns the operator table used for maximal munch.
func Punctuators() []string { return slices.Clone(punctuators) }

var (
	defaultOnce    sync.Once
	defaultGrammar *c.Grammar
)

// Default returns the shared grammar. It is built on first use.
func Default() *c.Grammar {
	defaultOnce.Do(func() {
		g, err := New()
		if err != nil {
			panic(err)
		}
		defaultGrammar = g
	})
	return defaultGrammar
}

// New builds a fresh copy of the grammar.
func New() (*c.Grammar, error) {
	b := c.NewBuilder()
	r := b.Ref

	lineTerminators := c.OneOf(lineTerminatorChars)

	// Vocabulary.
	b.Define("letter", c.Char(c.Union(c.Range('a', 'z'), c.Range('A', 'Z'))))
	b.Define("digit", c.Char(c.Range('0', '9')))
	b.Define("hexDigit", c.Char(c.Union(c.Range('0', '9'), c.Range('a', 'f'), c.Range('A', 'F'))))

	// Identifiers and reserved words.
	b.Define("identifierStart", c.Alt(r("letter"), c.Char(c.OneOf("$_"))))
	b.Define("identifierPart", c.Alt(r("identifierStart"), r("digit")))
	b.Define("identifierName", c.Seq(r("identifierStart"), c.Many(r("identifierPart"))))
	b.DefineToken(Keyword, c.Filter(r("identifierName"), c.TextIn(keywords...)))
	b.DefineToken(FutureReservedWord, c.Filter(r("identifierName"), c.TextIn(futureReservedWords...)))
	b.DefineToken(NullLiteral, c.Filter(r("identifierName"), c.TextIn("null")))
	b.DefineToken(BooleanLiteral, c.Filter(r("identifierName"), c.TextIn("true", "false")))
	b.Define(ReservedWord, c.Alt(r(Keyword), r(FutureReservedWord), r(NullLiteral), r(BooleanLiteral)))
	b.DefineToken(Identifier, c.ButNot(r("identifierName"), r(ReservedWord)))

	// Numbers.
	b.Define("decimalDigits", c.Many1(r("digit")))
	b.Define("nonZeroDigit", c.Char(c.Range('1', '9')))
	b.Define("decimalIntegerLiteral", c.Alt(
		c.Char(c.Is('0')),
		c.Seq(r("nonZeroDigit"), c.Many(r("digit"))),
	))
	b.Define("signedInteger", c.Seq(c.Optional(c.Char(c.OneOf("+-"))), r("decimalDigits")))
	b.Define("exponentPart", c.Seq(c.Char(c.OneOf("eE")), r("signedInteger")))
	b.DefineToken(DecimalLiteral, c.Alt(
		c.Seq(
			r("decimalIntegerLiteral"),
			c.Optional(c.Seq(c.Char(c.Is('.')), c.Many(r("digit")))),
			c.Optional(r("exponentPart")),
		),
		c.Seq(c.Char(c.Is('.')), r("decimalDigits"), c.Optional(r("exponentPart"))),
	))
	b.DefineToken(HexIntegerLiteral, c.Seq(c.Char(c.Is('0')), c.Char(c.OneOf("xX")), c.Many1(r("hexDigit"))))
	b.Define(NumericLiteral, c.Alt(r(DecimalLiteral), r(HexIntegerLiteral)))

	// Strings.
	b.Define("singleEscapeCharacter", c.Char(c.OneOf(singleEscapeChars)))
	b.Define("nonEscapeCharacter", c.Char(c.OneOf(singleEscapeChars+lineTerminatorChars).Not()))
	b.Define("characterEscapeSequence", c.Alt(r("singleEscapeCharacter"), r("nonEscapeCharacter")))
	b.Define("legacyNullEscape", c.Seq(c.Char(c.Is('0')), c.NoneOf(r("digit"))))
	b.Define("hexEscapeSequence", c.Seq(c.Char(c.Is('x')), r("hexDigit"), r("hexDigit")))
	b.Define("unicodeEscapeSequence", c.Seq(
		c.Char(c.Is('u')), r("hexDigit"), r("hexDigit"), r("hexDigit"), r("hexDigit"),
	))
	b.Define("escapeSequence", c.Alt(
		r("characterEscapeSequence"),
		r("legacyNullEscape"),
		r("hexEscapeSequence"),
		r("unicodeEscapeSequence"),
	))
	b.Define("lineTerminatorSequence", c.Alt(
		c.Char(c.OneOf("\n\u2028\u2029")),
		c.Seq(c.Char(c.Is('\r')), c.NoneOf(c.Char(c.Is('\n')))),
		c.Literal("\r\n"),
	))
	b.Define("lineContinuation", c.Seq(c.Char(c.Is('\\')), r("lineTerminatorSequence")))
	b.Define("doubleStringCharacter", c.Alt(
		c.Char(c.OneOf(`"\`+lineTerminatorChars).Not()),
		c.Seq(c.Char(c.Is('\\')), r("escapeSequence")),
		r("lineContinuation"),
	))
	b.Define("singleStringCharacter", c.Alt(
		c.Char(c.OneOf(`'\`+lineTerminatorChars).Not()),
		c.Seq(c.Char(c.Is('\\')), r("escapeSequence")),
		r("lineContinuation"),
	))
	b.DefineToken(StringLiteral, c.Alt(
		c.Seq(c.Char(c.Is('"')), c.Many(r("doubleStringCharacter")), c.Char(c.Is('"'))),
		c.Seq(c.Char(c.Is('\'')), c.Many(r("singleStringCharacter")), c.Char(c.Is('\''))),
	))

	// Regular expressions.
	b.Define("regexNonTerminator", c.Char(lineTerminators.Not()))
	b.Define("regexBackslashSequence", c.Seq(c.Char(c.Is('\\')), r("regexNonTerminator")))
	b.Define("regexClassChar", c.Alt(
		c.Char(c.Union(lineTerminators, c.OneOf(`]\`)).Not()),
		r("regexBackslashSequence"),
	))
	b.Define("regexClass", c.Seq(c.Char(c.Is('[')), c.Many(r("regexClassChar")), c.Char(c.Is(']'))))
	b.Define("regexFirstChar", c.Alt(
		c.Char(c.Union(lineTerminators, c.OneOf(`*\/[`)).Not()),
		r("regexBackslashSequence"),
		r("regexClass"),
	))
	b.Define("regexChar", c.Alt(
		c.Char(c.Union(lineTerminators, c.OneOf(`\/[`)).Not()),
		r("regexBackslashSequence"),
		r("regexClass"),
	))
	b.Define("regexBody", c.Seq(r("regexFirstChar"), c.Many(r("regexChar"))))
	b.Define("regexFlags", c.Many(r("identifierPart")))
	b.DefineToken(RegexLiteral, c.Seq(c.Char(c.Is('/')), r("regexBody"), c.Char(c.Is('/')), r("regexFlags")))

	// Comments and layout.
	b.Define("multiLineCommentChar", c.Alt(
		c.Char(c.Is('*').Not()),
		c.Seq(c.Char(c.Is('*')), c.LookAhead(c.Char(c.Is('/').Not()))),
	))
	b.Define("multiLineComment", c.Seq(c.Literal("/*"), c.Many(r("multiLineCommentChar")), c.Literal("*/")))
	b.Define("singleLineComment", c.Seq(c.Literal("//"), c.Many(c.Char(lineTerminators.Not()))))
	b.DefineToken(Comment, c.Alt(r("multiLineComment"), r("singleLineComment")))
	b.DefineToken(Whitespace, c.Char(c.OneOf(whitespaceChars)))
	b.DefineToken(LineTerminator, c.Char(lineTerminators))

	// Punctuators.
	b.DefineToken(Punctuator, c.GreedyRun(c.OneOf(punctuatorChars()), c.TextIn(punctuators...)))
	b.DefineToken(DivPunctuator, c.Seq(
		c.NoneOf(c.Literal("/*"), c.Literal("//")),
		c.GreedyRun(c.OneOf("/="), c.TextIn("/", "/=")),
	))

	// Entry rules.
	b.Define(Token, c.Alt(
		r(Identifier),
		r(ReservedWord),
		r(Punctuator),
		r(NumericLiteral),
		r(StringLiteral),
	))
	b.Define(ElementAssumingDivision, c.Alt(
		r(Whitespace),
		r(LineTerminator),
		r(Comment),
		r(Token),
		r(DivPunctuator),
	))
	b.Define(ElementAssumingRegex, c.Alt(
		r(Whitespace),
		r(LineTerminator),
		r(Comment),
		r(Token),
		r(RegexLiteral),
	))

	return b.Build()
}

// punctuatorChars collects every character that appears in the operator table.
func punctuatorChars() string {
	var sb strings.Builder
	for _, p := range punctuators {
		for _, ch := range p {
			if !strings.ContainsRune(sb.String(), ch) {
				sb.WriteRune(ch)
			}
		}
	}
	return sb.String()
}

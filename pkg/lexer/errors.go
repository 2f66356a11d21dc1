package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ErrEndOfStream is returned by Next once every character has been consumed.
var ErrEndOfStream = errors.New("end of stream")

// ErrNothingToSkip is returned by SkipInvalid when the tokenizer is not
// stopped at a lex error.
var ErrNothingToSkip = errors.New("no lex error to skip")

// ErrUnknownKind is returned by ParseKind for names that are not kinds.
var ErrUnknownKind = errors.New("unknown token kind")

// ErrUnknownContext is returned by ParseContext for unsupported names.
var ErrUnknownContext = errors.New("unknown lexing context")

// LexError reports a position where no element of the active root rule matched.
// The stream stops there; skipping ahead and retrying is up to the caller.
type LexError struct {
	// Offset is where matching was attempted.
	Offset int

	// Row and Col locate Offset, 0-based.
	Row int
	Col int

	// Reach is the furthest offset examined while trying to match,
	// usually the place where the input actually went wrong.
	Reach int

	// Message describes the failure.
	Message string
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Row+1, e.Col+1, e.Message)
}

const previewRunes = 12

// preview returns a short quoted excerpt of src starting at offset.
func preview(src string, offset int) string {
	rest := src[offset:]
	end := 0
	for i := 0; i < previewRunes && end < len(rest); i++ {
		_, size := utf8.DecodeRuneInString(rest[end:])
		end += size
	}
	excerpt := strconv.Quote(rest[:end])
	if end < len(rest) {
		excerpt += "..."
	}
	return excerpt
}

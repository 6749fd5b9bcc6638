package syntax

import "fmt"

// ErrorKind classifies lexical and syntax errors.
type ErrorKind uint8

const (
	_ ErrorKind = iota

	// Lexical errors
	UnterminatedString    // quote opened but never closed
	UnterminatedComment   // /* without */
	UnrecognizedCharacter // character matches no token rule

	// Syntax errors
	UnexpectedToken       // a required token or production is missing
	UnclosedBracket       // (, [ or { reaches end of input unclosed
	InvalidSubscriptIndex // bracket content is not a single number literal
)

var errorKindNames = [...]string{
	UnterminatedString:    "unterminated string",
	UnterminatedComment:   "unterminated comment",
	UnrecognizedCharacter: "unrecognized character",
	UnexpectedToken:       "unexpected token",
	UnclosedBracket:       "unclosed bracket",
	InvalidSubscriptIndex: "invalid subscript index",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// LexError reports a lexical error.
type LexError struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
}

func (e *LexError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Offset returns the byte offset of the error in the source.
func (e *LexError) Offset() int {
	return e.Pos.Offset()
}

// ParseError reports a syntax error.
// Expected and Found are set for UnexpectedToken and UnclosedBracket;
// Opening is the position of the unclosed bracket for UnclosedBracket.
type ParseError struct {
	Kind     ErrorKind
	Pos      Pos
	Expected string
	Found    string
	Opening  Pos
	Msg      string
}

func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

package syntax

import (
	"fmt"
	"strings"
)

// Scanner performs lexical analysis on BML source code.
//
// The scanner stops at the first lexical error: the offending token is
// reported as _Error and every later call to Next yields _EOF.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token literal (identifier name, number, string content)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	tokPos Pos     // token start position

	// Error handling
	errh func(err *LexError)
	err  *LexError // first (and only) lexical error

	// Literal accumulation
	litBuf strings.Builder

	comments []*Comment // comments seen so far
}

// Lexeme is an immutable snapshot of a scanned token.
type Lexeme struct {
	Tok  Token
	Lit  string
	Kind LitKind // zero unless Tok is _Literal
	Pos  Pos
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for the lexical error, if any; it may be nil.
func NewScanner(filename string, src []byte, errh func(err *LexError)) *Scanner {
	return &Scanner{
		source: newSource(filename, src),
		errh:   errh,
	}
}

// Tokenize scans src to the end and returns every token including the
// final EOF, or the first lexical error.
func Tokenize(filename string, src []byte) ([]Lexeme, error) {
	s := NewScanner(filename, src, nil)
	var toks []Lexeme
	for {
		s.Next()
		if s.tok == _Error {
			return nil, s.err
		}
		toks = append(toks, s.Lexeme())
		if s.tok == _EOF {
			return toks, nil
		}
	}
}

// Next advances to the next token.
func (s *Scanner) Next() {
	if s.err != nil {
		s.tok = _EOF
		s.lit = ""
		s.kind = 0
		s.tokPos = s.pos()
		return
	}

redo:
	s.skipWhitespace()

	s.tokPos = s.pos()
	s.kind = 0

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch), s.ch == '.' && isDigit(s.peek()):
		s.scanNumber()

	case s.ch == '"' || s.ch == '\'':
		s.scanString()

	case s.ch == '\\' && (s.peek() == '\n' || s.peek() == '\r'):
		// Line continuation
		s.nextch()
		s.nextch()
		goto redo

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// scanOperator returned true, meaning we skipped a comment
			goto redo
		}

	default:
		s.fail(UnrecognizedCharacter, s.tokPos, fmt.Sprintf("unrecognized character %q", s.ch))
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// Lexeme returns the current token as a value.
func (s *Scanner) Lexeme() Lexeme {
	return Lexeme{Tok: s.tok, Lit: s.lit, Kind: s.kind, Pos: s.tokPos}
}

// Comments returns the comments scanned so far, in source order.
func (s *Scanner) Comments() []*Comment {
	return s.comments
}

// Err returns the lexical error, or nil if none occurred.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// fail records a lexical error and turns the current token into _Error.
func (s *Scanner) fail(kind ErrorKind, pos Pos, msg string) {
	s.err = &LexError{Kind: kind, Pos: pos, Msg: msg}
	s.tok = _Error
	s.lit = ""
	if s.errh != nil {
		s.errh(s.err)
	}
}

// skipWhitespace skips blanks, tabs and line breaks.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a number literal: digits with an optional fraction
// ("12", "12.", "12.5") or a bare fraction (".5").
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.kind = NumberLit

	s.scanDecimalDigits()
	if s.ch == '.' {
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
}

// scanDecimalDigits scans decimal digits.
func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanString scans a single- or double-quoted string literal. There are
// no escape sequences; the literal is the raw bytes between the quotes,
// which need not be valid UTF-8, and may span lines.
func (s *Scanner) scanString() {
	quote := s.ch
	start := s.tokPos
	s.nextch() // skip opening quote
	from := s.chOff

	for s.ch != quote {
		if s.ch < 0 {
			s.fail(UnterminatedString, start, "string literal not terminated")
			return
		}
		s.nextch()
	}
	s.lit = s.segment(from)
	s.nextch() // skip closing quote

	s.tok = _Literal
	s.kind = StringLit
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok = _Add
		s.lit = "+"
	case '-':
		s.tok = _Sub
		s.lit = "-"
	case '*':
		s.tok = _Mul
		s.lit = "*"
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			return s.skipBlockComment()
		}
		s.tok = _Div
		s.lit = "/"
	case '%':
		s.tok = _Rem
		s.lit = "%"
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok = _Leq
			s.lit = "<="
		case '>':
			s.nextch()
			s.tok = _Neq
			s.lit = "<>"
		default:
			s.tok = _Lss
			s.lit = "<"
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Geq
			s.lit = ">="
		} else {
			s.tok = _Gtr
			s.lit = ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
			s.lit = "=="
		} else {
			s.tok = _Assign
			s.lit = "="
		}
	case '(':
		s.tok = _Lparen
		s.lit = "("
	case ')':
		s.tok = _Rparen
		s.lit = ")"
	case '[':
		s.tok = _Lbrack
		s.lit = "["
	case ']':
		s.tok = _Rbrack
		s.lit = "]"
	case '{':
		s.tok = _Lbrace
		s.lit = "{"
	case '}':
		s.tok = _Rbrace
		s.lit = "}"
	case ',':
		s.tok = _Comma
		s.lit = ","
	case ';':
		s.tok = _Semi
		s.lit = ";"
	case '.':
		s.tok = _Dot
		s.lit = "."
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line) and
// records it.
func (s *Scanner) skipLineComment() {
	// Already consumed the first /
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
	s.addComment(strings.TrimSuffix(s.segment(s.tokPos.Offset()), "\r"))
}

// skipBlockComment skips a non-nesting /* ... */ comment and records it.
// Returns false if the comment is unterminated; the error is recorded.
func (s *Scanner) skipBlockComment() bool {
	// Already consumed /, s.ch is *
	s.nextch()
	for {
		if s.ch < 0 {
			s.fail(UnterminatedComment, s.tokPos, "comment not terminated")
			return false
		}
		if s.ch == '*' && s.peek() == '/' {
			s.nextch()
			s.nextch()
			s.addComment(s.segment(s.tokPos.Offset()))
			return true
		}
		s.nextch()
	}
}

func (s *Scanner) addComment(text string) {
	s.comments = append(s.comments, &Comment{Pos: s.tokPos, Text: text})
}

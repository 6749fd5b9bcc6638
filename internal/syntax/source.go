package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// It walks a fully materialized UTF-8 buffer and provides
// character-by-character access.
type source struct {
	// Input
	buf []byte // source buffer

	// Position tracking
	filename string // source file name
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based, byte offset)

	// Current state
	ch    rune // current character, -1 for EOF
	chOff int  // byte offset of ch in buf
	offs  int  // byte offset of the character after ch
}

// newSource creates a new source over buf and primes the first character.
func newSource(filename string, buf []byte) source {
	s := source{
		buf:      buf,
		filename: filename,
		line:     1,
		col:      0,  // Will be incremented to 1 by first nextch()
		ch:       -1, // Sentinel: -1 means "before first char", prevents position update
	}
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col) always refers to the position of s.ch after nextch() returns.
// Initial state: line=1, col=0, s.ch=-1
// After first nextch(): line=1, col=1, s.ch=first char
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.chOff = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	// Invalid encodings come back as utf8.RuneError and are rejected by
	// the scanner as unrecognized characters outside strings and comments.
	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// peek returns the character after s.ch without consuming anything,
// or -1 at EOF.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

// segment returns the source bytes from offset from up to, but not
// including, the current character.
func (s *source) segment(from int) string {
	return string(s.buf[from:s.chOff])
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col, s.chOff)
}

// Character classification helpers

// isLetter reports whether r is a letter (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is an ASCII whitespace character.
// Newlines carry no meaning in BML and are skipped like any other blank.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// isOperatorStart reports whether r can start an operator or delimiter.
func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '<', '>', '=',
		'(', ')', '[', ']', '{', '}', ',', ';', '.':
		return true
	}
	return false
}

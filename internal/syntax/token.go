// Package syntax implements lexical and syntactic analysis for BML.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of input
	_Error              // lexical error

	// Literals
	_Name    // identifier: total, item, price
	_Literal // number or string literal (used with LitKind)

	// Operators (ordered by precedence, low to high)
	// Assignment
	_Assign // =

	// Logical operators
	_Or  // or, OR
	_And // and, AND

	// Equality operators
	_Eql // ==
	_Neq // <>

	// Relational operators
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Arithmetic operators (additive)
	_Add // +
	_Sub // -

	// Arithmetic operators (multiplicative)
	_Mul // *
	_Div // /
	_Rem // %

	// Unary operators
	_Not // not, NOT

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Semi   // ;
	_Dot    // .

	// Keywords
	_Break
	_Continue
	_Elif
	_Else
	_False
	_For
	_If
	_In
	_Null
	_Print
	_Return
	_True
	_Type // boolean, date, float, integer, string

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",

	_Or:  "or",
	_And: "and",

	_Eql: "==",
	_Neq: "<>",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Not: "not",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Semi:   ";",
	_Dot:    ".",

	_Break:    "break",
	_Continue: "continue",
	_Elif:     "elif",
	_Else:     "else",
	_False:    "false",
	_For:      "for",
	_If:       "if",
	_In:       "in",
	_Null:     "null",
	_Print:    "print",
	_Return:   "return",
	_True:     "true",
	_Type:     "TYPE",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	 1: or
//	 2: and
//	 6: == <>
//	 7: < <= > >=
//	10: + -
//	11: * / %
//
// Calls, dot chains, subscripts and array declarations sit at 13 and
// unary operators at 14; both are handled below the binary loop.
func (t Token) Precedence() int {
	switch t {
	case _Or:
		return 1
	case _And:
		return 2
	case _Eql, _Neq:
		return 6
	case _Lss, _Leq, _Gtr, _Geq:
		return 7
	case _Add, _Sub:
		return 10
	case _Mul, _Div, _Rem:
		return 11
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Break && t <= _Type
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t == _Literal
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Not
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported tokens for consumers of the AST (Operation.Op, BranchStmt.Tok).
const (
	Or       Token = _Or
	And      Token = _And
	Eql      Token = _Eql
	Neq      Token = _Neq
	Lss      Token = _Lss
	Leq      Token = _Leq
	Gtr      Token = _Gtr
	Geq      Token = _Geq
	Add      Token = _Add
	Sub      Token = _Sub
	Mul      Token = _Mul
	Div      Token = _Div
	Rem      Token = _Rem
	Not      Token = _Not
	Break    Token = _Break
	Continue Token = _Continue
)

// LitKind represents the kind of a literal.
type LitKind uint8

const (
	NumberLit LitKind = iota // 42, 3.14, 7., .5
	StringLit                // "hello", 'world'
	BoolLit                  // true, false
	NullLit                  // null
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	NumberLit: "number",
	StringLit: "string",
	BoolLit:   "boolean",
	NullLit:   "null",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= NullLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// TypeKind enumerates the built-in type names.
type TypeKind uint8

const (
	BooleanType TypeKind = iota
	DateType
	FloatType
	IntegerType
	StringType
)

var typeKindNames = [...]string{
	BooleanType: "boolean",
	DateType:    "date",
	FloatType:   "float",
	IntegerType: "integer",
	StringType:  "string",
}

func (k TypeKind) String() string {
	if k <= StringType {
		return typeKindNames[k]
	}
	return fmt.Sprintf("TypeKind(%d)", k)
}

// keywords maps keyword spellings to their token type.
// Matching is case-sensitive; only the logical operators have an
// upper-case synonym.
var keywords = map[string]Token{
	"break":    _Break,
	"continue": _Continue,
	"elif":     _Elif,
	"else":     _Else,
	"false":    _False,
	"for":      _For,
	"if":       _If,
	"in":       _In,
	"null":     _Null,
	"print":    _Print,
	"return":   _Return,
	"true":     _True,

	"and": _And,
	"AND": _And,
	"or":  _Or,
	"OR":  _Or,
	"not": _Not,
	"NOT": _Not,
}

// typeKeywords maps type keyword spellings to their kind. Both the
// lower-case and the capitalized spelling are accepted.
var typeKeywords = map[string]TypeKind{
	"boolean": BooleanType,
	"date":    DateType,
	"float":   FloatType,
	"integer": IntegerType,
	"string":  StringType,

	"Boolean": BooleanType,
	"Date":    DateType,
	"Float":   FloatType,
	"Integer": IntegerType,
	"String":  StringType,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if _, ok := typeKeywords[ident]; ok {
		return _Type
	}
	return _Name
}

// LookupType returns the type kind spelled by ident.
func LookupType(ident string) (TypeKind, bool) {
	k, ok := typeKeywords[ident]
	return k, ok
}

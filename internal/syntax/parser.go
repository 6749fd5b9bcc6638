package syntax

import (
	"fmt"
	"io"
	"strconv"
)

// Parser performs syntax analysis on BML source code.
//
// Parsing stops at the first lexical or syntax error: the error is
// reported through the error handler, recorded as the result of Parse,
// and the token stream is treated as exhausted from then on.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok  Token
	lit  string
	kind LitKind
	pos  Pos

	// Error handling
	errh  func(err error)
	first error // first error encountered
	abort bool  // set once first is recorded

	// Open brackets, innermost last
	open []bracket
}

// bracket is an opening delimiter awaiting its closer.
type bracket struct {
	tok Token
	pos Pos
}

// NewParser creates a new Parser for the given source.
// The errh function is called for the first error; it may be nil.
func NewParser(filename string, src []byte, errh func(err error)) *Parser {
	p := &Parser{errh: errh}
	p.scanner = NewScanner(filename, src, func(err *LexError) {
		p.report(err)
	})
	p.next() // prime the parser with first token
	return p
}

// Parse parses src and returns its program, or the first error.
func Parse(src string) (*Program, error) {
	return NewParser("", []byte(src), nil).Parse()
}

// ParseFile reads the entire source from r and parses it. The filename
// only labels positions.
func ParseFile(filename string, r io.Reader) (*Program, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return NewParser(filename, src, nil).Parse()
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	if p.abort {
		p.tok = _EOF
		p.lit = ""
		return
	}
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.kind = p.scanner.LitKind()
	p.pos = p.scanner.Pos()
	if p.tok == _Error {
		// Already reported through the scanner's error handler.
		p.tok = _EOF
	}
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.unexpected(strconv.Quote(tok.String()))
	}
}

// openBracket consumes an opening delimiter and remembers it until the
// matching closeBracket.
func (p *Parser) openBracket(tok Token) Pos {
	pos := p.pos
	p.want(tok)
	p.open = append(p.open, bracket{tok: tok, pos: pos})
	return pos
}

// closeBracket consumes the closer for the innermost open bracket.
func (p *Parser) closeBracket(tok Token) {
	if p.abort {
		return
	}
	p.want(tok)
	p.open = p.open[:len(p.open)-1]
}

// ----------------------------------------------------------------------------
// Error handling

// report records err as the parse result and stops the token stream.
func (p *Parser) report(err error) {
	if p.abort {
		return
	}
	p.first = err
	p.abort = true
	if p.errh != nil {
		p.errh(err)
	}
	p.tok = _EOF
}

// unexpected reports that the current token is not what was expected.
// Running out of input inside brackets is reported as an unclosed bracket.
func (p *Parser) unexpected(expected string) {
	if p.abort {
		return
	}
	found := p.describe()
	if p.tok == _EOF && len(p.open) > 0 {
		b := p.open[len(p.open)-1]
		p.report(&ParseError{
			Kind:     UnclosedBracket,
			Pos:      p.pos,
			Expected: expected,
			Found:    found,
			Opening:  b.pos,
			Msg:      fmt.Sprintf("%q opened at %s is never closed", b.tok.String(), b.pos),
		})
		return
	}
	p.report(&ParseError{
		Kind:     UnexpectedToken,
		Pos:      p.pos,
		Expected: expected,
		Found:    found,
		Msg:      fmt.Sprintf("expected %s, found %s", expected, found),
	})
}

// invalidIndex reports a malformed subscript or array dimension.
func (p *Parser) invalidIndex(msg string) {
	if p.abort {
		return
	}
	if p.tok == _EOF {
		p.unexpected(strconv.Quote(_Rbrack.String()))
		return
	}
	p.report(&ParseError{
		Kind:  InvalidSubscriptIndex,
		Pos:   p.pos,
		Found: p.describe(),
		Msg:   msg,
	})
}

// describe returns a human-readable description of the current token.
func (p *Parser) describe() string {
	switch p.tok {
	case _EOF:
		return "EOF"
	case _Name:
		return "identifier " + p.lit
	case _Literal:
		if p.kind == StringLit {
			return "string " + strconv.Quote(p.lit)
		}
		return "number " + p.lit
	}
	return strconv.Quote(p.lit)
}

// Err returns the first error encountered, or nil if none.
func (p *Parser) Err() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses statements until the end of input and returns the
// program. If any error occurred, the program is nil.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}
	prog.pos = p.pos

	for p.tok != _EOF {
		prog.Stmts = append(prog.Stmts, p.stmt())
	}
	prog.Comments = p.scanner.Comments()

	if p.first != nil {
		return nil, p.first
	}
	return prog, nil
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	n := &Name{Value: p.lit}
	n.pos = p.pos
	if p.tok != _Name {
		p.unexpected("identifier")
		n.Value = "_"
		return n
	}
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement.
func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Lbrace:
		return p.blockStmt()

	case _If:
		return p.ifStmt()

	case _For:
		return p.forStmt()

	case _Return:
		return p.returnStmt()

	case _Break, _Continue:
		return p.branchStmt()

	default:
		return p.simpleStmt()
	}
}

// simpleStmt parses an expression statement or assignment.
func (p *Parser) simpleStmt() Stmt {
	pos := p.pos
	x := p.expr()

	if p.tok == _Assign {
		return p.assignStmt(pos, x)
	}

	s := &ExprStmt{X: x}
	s.pos = pos
	p.want(_Semi)
	return s
}

// assignStmt parses Target = Value;
func (p *Parser) assignStmt(pos Pos, target Expr) Stmt {
	s := &AssignStmt{Target: target}
	s.pos = pos

	p.next() // consume =

	s.Value = p.expr()
	p.want(_Semi)

	return s
}

// blockStmt parses { stmts... }
func (p *Parser) blockStmt() *BlockStmt {
	b := &BlockStmt{}
	b.pos = p.openBracket(_Lbrace)

	for p.tok != _Rbrace && p.tok != _EOF {
		b.Stmts = append(b.Stmts, p.stmt())
	}

	b.Rbrace = p.pos
	p.closeBracket(_Rbrace)

	return b
}

// ifStmt parses: if (cond) { } elif (cond) { } ... else { }
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.pos

	p.want(_If)
	s.Branches = append(s.Branches, p.ifBranch(s.pos))

	for p.tok == _Elif {
		pos := p.pos
		p.next()
		s.Branches = append(s.Branches, p.ifBranch(pos))
	}

	if p.got(_Else) {
		s.Else = p.blockStmt()
	}

	return s
}

// ifBranch parses the (cond) { body } part of an if or elif.
func (p *Parser) ifBranch(pos Pos) *IfBranch {
	br := &IfBranch{}
	br.pos = pos

	p.openBracket(_Lparen)
	br.Cond = p.expr()
	p.closeBracket(_Rparen)

	br.Body = p.blockStmt()
	return br
}

// forStmt parses: for binder in iterable { body }
func (p *Parser) forStmt() Stmt {
	s := &ForStmt{}
	s.pos = p.pos

	p.want(_For)
	s.Binder = p.expr()
	p.want(_In)
	s.Iterable = p.expr()
	s.Body = p.blockStmt()

	return s
}

// returnStmt parses: return [expr];
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{}
	s.pos = p.pos

	p.want(_Return)

	// Optional return value (check for statement terminators)
	if p.tok != _Semi && p.tok != _Rbrace && p.tok != _EOF {
		s.Result = p.expr()
	}

	p.want(_Semi)
	return s
}

// branchStmt parses: break; or continue;
func (p *Parser) branchStmt() Stmt {
	s := &BranchStmt{Tok: p.tok}
	s.pos = p.pos
	p.next()
	p.want(_Semi)
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements Pratt parsing / precedence climbing.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		// Check if current token is a binary operator with sufficient precedence
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses a unary expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub, _Add:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op

	default:
		return p.primaryExpr()
	}
}

// primaryExpr parses an operand. Forms starting with an identifier or a
// type keyword are told apart by the token that follows them.
func (p *Parser) primaryExpr() Expr {
	switch p.tok {
	case _Type:
		return p.typeExpr()

	case _Name:
		return p.nameExpr()

	case _Lparen: // parenthesized expression
		paren := &ParenExpr{}
		paren.pos = p.openBracket(_Lparen)
		paren.X = p.expr()
		p.closeBracket(_Rparen)
		return paren

	case _Print:
		pr := &PrintExpr{}
		pr.pos = p.pos
		p.next()
		pr.X = p.expr()
		return pr

	case _True, _False:
		return p.basicLit(BoolLit)

	case _Null:
		return p.basicLit(NullLit)

	case _Literal:
		return p.basicLit(p.kind)

	default:
		p.unexpected("expression")
		n := &Name{Value: "_"} // placeholder, the parse has failed
		n.pos = p.pos
		return n
	}
}

// basicLit turns the current token into a literal of the given kind.
func (p *Parser) basicLit(kind LitKind) *BasicLit {
	lit := &BasicLit{Value: p.lit, Kind: kind}
	lit.pos = p.pos
	p.next()
	return lit
}

// nameExpr parses an identifier and whatever call, dot chain or
// subscript it heads.
func (p *Parser) nameExpr() Expr {
	n := p.name()

	switch p.tok {
	case _Lparen:
		return p.callExpr(n)

	case _Dot:
		d := p.dotExpr(n)
		if p.tok == _Lparen {
			return p.callExpr(d)
		}
		return d

	case _Lbrack:
		return p.indexExpr(n)
	}

	return n
}

// typeExpr parses a type keyword used as a constructor call callee or
// as the element type of an array declaration.
func (p *Parser) typeExpr() Expr {
	kind, _ := LookupType(p.lit)
	t := &TypeName{Kind: kind}
	t.pos = p.pos
	p.next()

	switch p.tok {
	case _Lparen:
		return p.callExpr(t)
	case _Lbrack:
		return p.arrayType(t)
	}

	p.unexpected(`"(" or "["`)
	return t
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun Expr) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.openBracket(_Lparen)
	if p.tok != _Rparen {
		call.Args = p.exprList()
	}
	p.closeBracket(_Rparen)

	return call
}

// dotExpr parses X.a.b...
func (p *Parser) dotExpr(x *Name) *DotExpr {
	d := &DotExpr{X: x}
	d.pos = x.Pos()

	for p.got(_Dot) {
		d.Path = append(d.Path, p.name())
	}

	return d
}

// indexExpr parses X[i] or X[i][j].
func (p *Parser) indexExpr(x *Name) Expr {
	idx := &IndexExpr{X: x}
	idx.pos = x.Pos()

	for p.tok == _Lbrack {
		if len(idx.Indices) == 2 {
			p.invalidIndex("at most two subscripts are allowed")
			break
		}
		p.openBracket(_Lbrack)
		if p.tok != _Literal || p.kind != NumberLit {
			p.invalidIndex(fmt.Sprintf("subscript index must be a number literal, found %s", p.describe()))
			break
		}
		idx.Indices = append(idx.Indices, p.basicLit(NumberLit))
		p.closeIndex()
	}

	return idx
}

// arrayType parses Elem[N], Elem[] or Elem[N][M].
func (p *Parser) arrayType(elem *TypeName) Expr {
	at := &ArrayType{Elem: elem}
	at.pos = elem.Pos()

	for p.tok == _Lbrack {
		if len(at.Dims) == 2 {
			p.invalidIndex("array declarations have at most two dimensions")
			break
		}
		p.openBracket(_Lbrack)
		var dim *BasicLit
		switch {
		case p.tok == _Rbrack:
			// unsized
		case p.tok == _Literal && p.kind == NumberLit:
			dim = p.basicLit(NumberLit)
		default:
			p.invalidIndex(fmt.Sprintf("array size must be a number literal, found %s", p.describe()))
		}
		at.Dims = append(at.Dims, dim)
		p.closeIndex()
	}

	return at
}

// closeIndex consumes the ] after a subscript or array size. Anything
// else inside the brackets makes the index invalid.
func (p *Parser) closeIndex() {
	if p.tok == _Rbrack || p.tok == _EOF {
		p.closeBracket(_Rbrack)
		return
	}
	p.invalidIndex(fmt.Sprintf("subscript must be a single number literal, found %s", p.describe()))
}

// exprList parses a comma-separated list of expressions.
func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}

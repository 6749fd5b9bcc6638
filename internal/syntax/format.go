package syntax

import (
	"bufio"
	"io"
	"math"
	"strings"
)

// Format writes node as canonical BML source: one statement per line,
// tab indentation, single spaces around binary operators.
//
// Comments recorded on a Program are kept. A comment on the line where a
// statement ends stays at the end of that line; any other comment goes on
// its own line before the statement or closing brace that follows it.
//
// Formatting a parsed program and parsing the result again yields a
// structurally identical AST.
func Format(w io.Writer, node Node) error {
	bw := bufio.NewWriter(w)
	f := &formatter{w: bw}
	f.node(node)
	return bw.Flush()
}

// Precedence of non-binary expressions for parenthesization.
const (
	unaryPrec   = 14
	primaryPrec = 15
)

type formatter struct {
	w      *bufio.Writer
	indent int

	comments []*Comment // comments not yet written, in source order
}

func (f *formatter) line(s string) {
	f.w.WriteString(strings.Repeat("\t", f.indent))
	f.w.WriteString(s)
}

func (f *formatter) node(node Node) {
	switch n := node.(type) {
	case *Program:
		f.comments = n.Comments
		f.stmtList(n.Stmts, math.MaxInt)
	case Stmt:
		f.stmt(n)
		f.w.WriteString("\n")
	case Expr:
		f.w.WriteString(exprSource(n, 0, true))
	}
}

// stmtList writes one statement per line. Comments are placed by their
// offset; those before end that follow the last statement are written
// after it.
func (f *formatter) stmtList(list []Stmt, end int) {
	for i, s := range list {
		f.leading(s.Pos().Offset())
		f.stmt(s)
		limit := end
		if i+1 < len(list) {
			limit = list[i+1].Pos().Offset()
		}
		f.trailing(endLine(s), limit)
		f.w.WriteString("\n")
	}
	f.leading(end)
}

// pending reports whether a comment starts before offset end.
func (f *formatter) pending(end int) bool {
	return len(f.comments) > 0 && f.comments[0].Pos.Offset() < end
}

// leading writes the comments that start before offset end, one per line.
func (f *formatter) leading(end int) {
	for f.pending(end) {
		f.line(f.comments[0].Text + "\n")
		f.comments = f.comments[1:]
	}
}

// trailing appends the comments on source line ln that start before
// offset limit to the current line.
func (f *formatter) trailing(ln uint32, limit int) {
	for f.pending(limit) && f.comments[0].Pos.Line() == ln {
		f.w.WriteString(" " + f.comments[0].Text)
		f.comments = f.comments[1:]
	}
}

// endLine returns the source line a statement ends on. Simple statements
// are taken to end on the line they start.
func endLine(s Stmt) uint32 {
	switch n := s.(type) {
	case *BlockStmt:
		return n.Rbrace.Line()
	case *IfStmt:
		if n.Else != nil {
			return n.Else.Rbrace.Line()
		}
		return n.Branches[len(n.Branches)-1].Body.Rbrace.Line()
	case *ForStmt:
		return n.Body.Rbrace.Line()
	}
	return s.Pos().Line()
}

// stmt writes s without the final newline.
func (f *formatter) stmt(s Stmt) {
	switch n := s.(type) {
	case *ExprStmt:
		f.line(exprSource(n.X, 0, true) + ";")

	case *AssignStmt:
		f.line(exprSource(n.Target, 0, true) + " = " + exprSource(n.Value, 0, true) + ";")

	case *ReturnStmt:
		if n.Result == nil {
			f.line("return;")
		} else {
			f.line("return " + exprSource(n.Result, 0, true) + ";")
		}

	case *BranchStmt:
		f.line(n.Tok.String() + ";")

	case *BlockStmt:
		f.line("")
		f.block(n)

	case *IfStmt:
		for i, br := range n.Branches {
			if i == 0 {
				f.line("if (")
			} else {
				f.w.WriteString(" elif (")
			}
			f.w.WriteString(exprSource(br.Cond, 0, true))
			f.w.WriteString(") ")
			f.block(br.Body)
		}
		if n.Else != nil {
			f.w.WriteString(" else ")
			f.block(n.Else)
		}

	case *ForStmt:
		f.line("for " + exprSource(n.Binder, 0, true) + " in " + exprSource(n.Iterable, 0, true) + " ")
		f.block(n.Body)
	}
}

// block writes { ... } starting at the current column; the closing brace
// is left without a trailing newline.
func (f *formatter) block(b *BlockStmt) {
	end := b.Rbrace.Offset()
	if len(b.Stmts) == 0 && !f.pending(end) {
		f.w.WriteString("{}")
		return
	}
	f.w.WriteString("{\n")
	f.indent++
	f.stmtList(b.Stmts, end)
	f.indent--
	f.line("}")
}

// exprSource renders x so that it reparses to the same tree when it
// appears where the minimum binding strength is prec. last reports
// whether nothing follows x in the enclosing expression; a print form
// swallows everything after it and needs parentheses otherwise.
func exprSource(x Expr, prec int, last bool) string {
	var s string
	own := primaryPrec

	switch n := x.(type) {
	case *Operation:
		if n.Y == nil {
			own = unaryPrec
			op := n.Op.String()
			if n.Op == _Not {
				op += " "
			}
			s = op + exprSource(n.X, unaryPrec, last || prec > unaryPrec)
		} else {
			own = n.Op.Precedence()
			inner := last || prec > own
			s = exprSource(n.X, own, false) + " " + n.Op.String() + " " + exprSource(n.Y, own+1, inner)
		}

	case *PrintExpr:
		s = "print " + exprSource(n.X, 0, true)
		if !last {
			return "(" + s + ")"
		}
		return s

	case *ParenExpr:
		s = "(" + exprSource(n.X, 0, true) + ")"

	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprSource(a, 0, true)
		}
		s = exprSource(n.Fun, primaryPrec, true) + "(" + strings.Join(args, ", ") + ")"

	case *DotExpr:
		s = dotPath(n)

	case *IndexExpr:
		var b strings.Builder
		b.WriteString(n.X.Value)
		for _, i := range n.Indices {
			b.WriteString("[" + i.Value + "]")
		}
		s = b.String()

	case *ArrayType:
		s = typeString(n)

	case *TypeName:
		s = n.Kind.String()

	case *Name:
		s = n.Value

	case *BasicLit:
		s = litSource(n)
	}

	if own < prec {
		return "(" + s + ")"
	}
	return s
}

// litSource returns the source spelling of a literal. Strings have no
// escapes, so the quote is chosen to avoid the characters they contain.
func litSource(lit *BasicLit) string {
	if lit.Kind != StringLit {
		return lit.Value
	}
	if strings.Contains(lit.Value, `"`) {
		return "'" + lit.Value + "'"
	}
	return `"` + lit.Value + `"`
}

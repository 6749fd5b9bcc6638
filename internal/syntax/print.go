package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child one level deeper.
func (p *printer) field(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		for _, br := range n.Branches {
			p.print(br)
		}
		if n.Else != nil {
			p.field("Else", n.Else)
		}
		p.indent--

	case *IfBranch:
		p.printf("Branch %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.field("Binder", n.Binder)
		p.field("Iterable", n.Iterable)
		p.field("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *BranchStmt:
		p.printf("BranchStmt %s %s\n", n.pos, n.Tok)

	case *AssignStmt:
		p.printf("AssignStmt %s\n", n.pos)
		p.indent++
		p.field("Target", n.Target)
		p.field("Value", n.Value)
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *TypeName:
		p.printf("TypeName %s %s\n", n.pos, n.Kind)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.field("X", n.X)
			p.field("Y", n.Y)
			p.indent--
		}

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.field("Fun", n.Fun)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *DotExpr:
		p.printf("DotExpr %s %s\n", n.pos, dotPath(n))

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.field("X", n.X)
		p.printf("Indices:\n")
		p.indent++
		for _, i := range n.Indices {
			p.print(i)
		}
		p.indent--
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *PrintExpr:
		p.printf("PrintExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ArrayType:
		p.printf("ArrayType %s %s\n", n.pos, typeString(n))

	default:
		p.printf("<%T>\n", node)
	}
}

// dotPath returns the dotted spelling of a member access chain.
func dotPath(d *DotExpr) string {
	var b strings.Builder
	b.WriteString(d.X.Value)
	for _, sel := range d.Path {
		b.WriteByte('.')
		b.WriteString(sel.Value)
	}
	return b.String()
}

// typeString returns the source spelling of an array declaration.
func typeString(at *ArrayType) string {
	var b strings.Builder
	b.WriteString(at.Elem.Kind.String())
	for _, d := range at.Dims {
		b.WriteByte('[')
		if d != nil {
			b.WriteString(d.Value)
		}
		b.WriteByte(']')
	}
	return b.String()
}

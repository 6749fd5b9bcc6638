package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements.
// All nodes implement the Node interface. Expression and Statement
// nodes further implement their respective interfaces.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	End() Pos // position of first character immediately after the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) End() Pos { return n.pos } // default: return start position
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program

// Program is the root of a parsed source: its top-level statements in
// source order.
type Program struct {
	node
	Stmts    []Stmt
	Comments []*Comment // every comment in the source, in source order
}

// Comment is a // or /* */ comment. Comments are not part of the tree
// proper; they are kept on the Program so that Format can reproduce them.
type Comment struct {
	Pos  Pos
	Text string // comment text including its delimiters
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string // identifier string
}

// BasicLit represents a literal value: number, string, boolean or null.
type BasicLit struct {
	expr
	Value string  // literal text (string content without quotes)
	Kind  LitKind // NumberLit, StringLit, BoolLit, NullLit
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
// For binary operations, both X and Y are set.
type Operation struct {
	expr
	Op Token // operator token
	X  Expr  // left operand (or only operand for unary)
	Y  Expr  // right operand (nil for unary)
}

// CallExpr represents a call: Fun(Args...).
// Fun is a *Name, a *DotExpr (method call) or a *TypeName (constructor).
type CallExpr struct {
	expr
	Fun  Expr   // callee
	Args []Expr // argument list
}

// DotExpr represents a member access chain: X.Path[0].Path[1]...
type DotExpr struct {
	expr
	X    *Name   // base identifier
	Path []*Name // accessed members, at least one
}

// IndexExpr represents a subscript: X[i] or X[i][j].
// Indices are number literals only.
type IndexExpr struct {
	expr
	X       *Name       // subscripted identifier
	Indices []*BasicLit // one or two NumberLit indices
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr // inner expression
}

// PrintExpr represents the built-in print form: print X
type PrintExpr struct {
	expr
	X Expr // printed expression
}

// ----------------------------------------------------------------------------
// Type Expressions

// TypeName represents one of the built-in type keywords.
type TypeName struct {
	expr
	Kind TypeKind
}

// ArrayType represents an array declaration: Elem[N] or Elem[N][M].
// A nil dimension is an unsized bracket pair: integer[].
type ArrayType struct {
	expr
	Elem *TypeName   // element type
	Dims []*BasicLit // one or two NumberLit sizes, nil when omitted
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X Expr // expression
}

// AssignStmt represents an assignment: Target = Value.
// Target may be any expression; assignability is a semantic question.
type AssignStmt struct {
	stmt
	Target Expr
	Value  Expr
}

// BlockStmt represents a block statement: { Stmts... }
type BlockStmt struct {
	stmt
	Stmts  []Stmt // statements
	Rbrace Pos    // position of closing brace
}

// IfBranch is one condition/body pair of an IfStmt.
type IfBranch struct {
	node
	Cond Expr       // condition, without its syntactic parentheses
	Body *BlockStmt // branch body
}

// IfStmt represents an if statement:
// if (Cond) {...} elif (Cond) {...} else {...}
type IfStmt struct {
	stmt
	Branches []*IfBranch // the if branch followed by any elif branches
	Else     *BlockStmt  // else branch (nil if absent)
}

// ForStmt represents a foreach loop: for Binder in Iterable { Body }
type ForStmt struct {
	stmt
	Binder   Expr       // loop variable expression
	Iterable Expr       // iterated expression
	Body     *BlockStmt // loop body
}

// ReturnStmt represents a return statement: return [Result]
type ReturnStmt struct {
	stmt
	Result Expr // return value (nil for bare return)
}

// BranchStmt represents a break or continue statement.
type BranchStmt struct {
	stmt
	Tok Token // Break or Continue
}

package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *IfStmt:
		for _, br := range n.Branches {
			Walk(br, v)
		}
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *IfBranch:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Binder, v)
		Walk(n.Iterable, v)
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *AssignStmt:
		Walk(n.Target, v)
		Walk(n.Value, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *DotExpr:
		Walk(n.X, v)
		for _, sel := range n.Path {
			Walk(sel, v)
		}

	case *IndexExpr:
		Walk(n.X, v)
		for _, i := range n.Indices {
			Walk(i, v)
		}

	case *ParenExpr:
		Walk(n.X, v)

	case *PrintExpr:
		Walk(n.X, v)

	case *ArrayType:
		Walk(n.Elem, v)
		for _, d := range n.Dims {
			if d != nil {
				Walk(d, v)
			}
		}

	// Leaf nodes: Name, BasicLit, TypeName, BranchStmt
	// No children to visit
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

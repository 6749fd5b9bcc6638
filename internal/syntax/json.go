package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":  "Program",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, stmtJSON),
		}

	case *BlockStmt:
		return map[string]interface{}{
			"type":  "BlockStmt",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, stmtJSON),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type":     "IfStmt",
			"pos":      n.pos.String(),
			"branches": mapSlice(n.Branches, func(b *IfBranch) interface{} { return toJSON(b) }),
		}
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *IfBranch:
		return map[string]interface{}{
			"type": "IfBranch",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *ForStmt:
		return map[string]interface{}{
			"type":     "ForStmt",
			"pos":      n.pos.String(),
			"binder":   toJSON(n.Binder),
			"iterable": toJSON(n.Iterable),
			"body":     toJSON(n.Body),
		}

	case *ReturnStmt:
		m := map[string]interface{}{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *BranchStmt:
		return map[string]interface{}{
			"type":  "BranchStmt",
			"pos":   n.pos.String(),
			"token": n.Tok.String(),
		}

	case *AssignStmt:
		return map[string]interface{}{
			"type":   "AssignStmt",
			"pos":    n.pos.String(),
			"target": toJSON(n.Target),
			"value":  toJSON(n.Value),
		}

	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *TypeName:
		return map[string]interface{}{
			"type": "TypeName",
			"pos":  n.pos.String(),
			"name": n.Kind.String(),
		}

	case *Operation:
		m := map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  toJSON(n.Fun),
			"args": mapSlice(n.Args, exprJSON),
		}

	case *DotExpr:
		return map[string]interface{}{
			"type": "DotExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
			"path": mapSlice(n.Path, func(sel *Name) interface{} { return sel.Value }),
		}

	case *IndexExpr:
		return map[string]interface{}{
			"type":    "IndexExpr",
			"pos":     n.pos.String(),
			"x":       toJSON(n.X),
			"indices": mapSlice(n.Indices, func(i *BasicLit) interface{} { return toJSON(i) }),
		}

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *PrintExpr:
		return map[string]interface{}{
			"type": "PrintExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *ArrayType:
		return map[string]interface{}{
			"type": "ArrayType",
			"pos":  n.pos.String(),
			"elem": toJSON(n.Elem),
			"dims": mapSlice(n.Dims, func(d *BasicLit) interface{} {
				if d == nil {
					return nil
				}
				return toJSON(d)
			}),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func stmtJSON(s Stmt) interface{} { return toJSON(s) }
func exprJSON(x Expr) interface{} { return toJSON(x) }

// mapSlice maps f over s.
func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

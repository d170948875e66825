package validator

import "github.com/JungleDome/FirScript/internal/lang"

// walkStmts visits every statement and expression node reachable from
// stmts, depth-first, calling visit on each. Used by the classification and
// validation passes to find strategy.* references and input.* calls
// anywhere in a script's tree, not only at top level.
func walkStmts(stmts []lang.Stmt, visit func(lang.Node)) {
	for _, s := range stmts {
		walkStmt(s, visit)
	}
}

func walkStmt(stmt lang.Stmt, visit func(lang.Node)) {
	if stmt == nil {
		return
	}

	visit(stmt)

	switch s := stmt.(type) {
	case *lang.FunctionDef:
		walkStmts(s.Body, visit)
	case *lang.Assign:
		walkExpr(s.Target, visit)
		walkExpr(s.Value, visit)
	case *lang.ExprStmt:
		walkExpr(s.X, visit)
	case *lang.Return:
		walkExpr(s.Value, visit)
	case *lang.If:
		walkExpr(s.Cond, visit)
		walkStmts(s.Body, visit)
		walkStmts(s.Orelse, visit)
	case *lang.While:
		walkExpr(s.Cond, visit)
		walkStmts(s.Body, visit)
	case *lang.For:
		walkExpr(s.Iter, visit)
		walkStmts(s.Body, visit)
	case *lang.Global:
		// no nested nodes
	}
}

func walkExpr(expr lang.Expr, visit func(lang.Node)) {
	if expr == nil {
		return
	}

	visit(expr)

	switch e := expr.(type) {
	case *lang.Attribute:
		walkExpr(e.Value, visit)
	case *lang.Call:
		walkExpr(e.Func, visit)

		for _, a := range e.Args {
			walkExpr(a, visit)
		}

		for _, v := range e.KwValues {
			walkExpr(v, visit)
		}
	case *lang.Subscript:
		walkExpr(e.Value, visit)
		walkExpr(e.Index, visit)
	case *lang.ListLit:
		for _, el := range e.Elts {
			walkExpr(el, visit)
		}
	case *lang.DictLit:
		for _, k := range e.Keys {
			walkExpr(k, visit)
		}

		for _, v := range e.Values {
			walkExpr(v, visit)
		}
	case *lang.Lambda:
		walkExpr(e.Body, visit)
	case *lang.UnaryOp:
		walkExpr(e.X, visit)
	case *lang.BinOp:
		walkExpr(e.Left, visit)
		walkExpr(e.Right, visit)
	case *lang.BoolOp:
		for _, v := range e.Values {
			walkExpr(v, visit)
		}
	case *lang.Compare:
		walkExpr(e.Left, visit)

		for _, c := range e.Comps {
			walkExpr(c, visit)
		}
	case *lang.Name, *lang.Constant:
		// leaf nodes
	}
}

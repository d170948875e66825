package engine

import (
	"fmt"
	"math"

	goerrors "github.com/JungleDome/FirScript/pkg/errors"

	"github.com/JungleDome/FirScript/internal/lang"
)

// runtimeErr wraps a host-level failure into a *goerrors.ScriptRuntimeError
// pinned to node's location, unless err is already a ScriptEngineError (or
// the internal returnSignal), in which case it is returned unchanged so the
// most specific error type survives propagation.
func (ctx *ExecutionContext) runtimeErr(node lang.Node, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*returnSignal); ok {
		return err
	}

	if _, ok := err.(goerrors.ScriptEngineError); ok {
		return err
	}

	line, col := node.Pos()

	return goerrors.NewScriptRuntimeError(ctx.DisplayName, ctx.DisplayName, line, ctx.sourceLine(line), col, err.Error())
}

func (ctx *ExecutionContext) notAllowed(node lang.Node, name string, err error) error {
	line, col := node.Pos()

	return goerrors.NewNotAllowedError(ctx.DisplayName, ctx.DisplayName, line, ctx.sourceLine(line), col, err.Error())
}

// execBlock runs stmts in order, stopping and propagating on the first
// error (including a returnSignal unwinding to the enclosing call).
func (ctx *ExecutionContext) execBlock(stmts []lang.Stmt, frame *Frame) error {
	for _, stmt := range stmts {
		if err := ctx.exec(stmt, frame); err != nil {
			return err
		}
	}

	return nil
}

func (ctx *ExecutionContext) exec(stmt lang.Stmt, frame *Frame) error {
	if err := ctx.execRaw(stmt, frame); err != nil {
		return ctx.runtimeErr(stmt, err)
	}

	return nil
}

func (ctx *ExecutionContext) execRaw(stmt lang.Stmt, frame *Frame) error {
	switch s := stmt.(type) {
	case *lang.FunctionDef:
		frame.Set(s.Name, &Function{Name: s.Name, Params: s.Params, Body: s.Body})

		return nil
	case *lang.Assign:
		val, err := ctx.eval(s.Value, frame)
		if err != nil {
			return err
		}

		return ctx.assign(s.Target, val, frame)
	case *lang.ExprStmt:
		_, err := ctx.eval(s.X, frame)

		return err
	case *lang.Return:
		if s.Value == nil {
			return &returnSignal{}
		}

		val, err := ctx.eval(s.Value, frame)
		if err != nil {
			return err
		}

		return &returnSignal{value: val}
	case *lang.If:
		cond, err := ctx.eval(s.Cond, frame)
		if err != nil {
			return err
		}

		if truthy(cond) {
			return ctx.execBlock(s.Body, frame)
		}

		return ctx.execBlock(s.Orelse, frame)
	case *lang.While:
		for {
			cond, err := ctx.eval(s.Cond, frame)
			if err != nil {
				return err
			}

			if !truthy(cond) {
				return nil
			}

			if err := ctx.execBlock(s.Body, frame); err != nil {
				return err
			}
		}
	case *lang.For:
		iterable, err := ctx.eval(s.Iter, frame)
		if err != nil {
			return err
		}

		list, ok := iterable.([]any)
		if !ok {
			return fmt.Errorf("'%T' object is not iterable", iterable)
		}

		for _, item := range list {
			frame.Set(s.Target, item)

			if err := ctx.execBlock(s.Body, frame); err != nil {
				return err
			}
		}

		return nil
	case *lang.Global:
		for _, name := range s.Names {
			frame.DeclareGlobal(name)
		}

		return nil
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (ctx *ExecutionContext) assign(target lang.Expr, val any, frame *Frame) error {
	switch t := target.(type) {
	case *lang.Name:
		frame.Set(t.Ident, val)

		return nil
	case *lang.Attribute:
		base, err := ctx.eval(t.Value, frame)
		if err != nil {
			return err
		}

		m, ok := base.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot assign attribute %q on %T", t.Attr, base)
		}

		m[t.Attr] = val

		return nil
	case *lang.Subscript:
		base, err := ctx.eval(t.Value, frame)
		if err != nil {
			return err
		}

		idx, err := ctx.eval(t.Index, frame)
		if err != nil {
			return err
		}

		switch container := base.(type) {
		case map[string]any:
			key, ok := idx.(string)
			if !ok {
				return fmt.Errorf("dict keys must be strings")
			}

			container[key] = val

			return nil
		case []any:
			i, ok := idx.(int64)
			if !ok || i < 0 || int(i) >= len(container) {
				return fmt.Errorf("list assignment index out of range")
			}

			container[i] = val

			return nil
		default:
			return fmt.Errorf("cannot assign subscript on %T", base)
		}
	default:
		return fmt.Errorf("invalid assignment target")
	}
}

func (ctx *ExecutionContext) eval(expr lang.Expr, frame *Frame) (any, error) {
	val, err := ctx.evalRaw(expr, frame)
	if err != nil {
		return nil, ctx.runtimeErr(expr, err)
	}

	return val, nil
}

func (ctx *ExecutionContext) evalRaw(expr lang.Expr, frame *Frame) (any, error) {
	switch e := expr.(type) {
	case *lang.Constant:
		return e.Value, nil
	case *lang.Name:
		if v, ok := frame.Get(e.Ident); ok {
			return v, nil
		}

		return nil, fmt.Errorf("name %q is not defined", e.Ident)
	case *lang.Attribute:
		base, err := ctx.eval(e.Value, frame)
		if err != nil {
			return nil, err
		}

		return ctx.evalAttr(base, e.Attr)
	case *lang.Subscript:
		return ctx.evalSubscript(e, frame)
	case *lang.ListLit:
		out := make([]any, len(e.Elts))

		for i, el := range e.Elts {
			v, err := ctx.eval(el, frame)
			if err != nil {
				return nil, err
			}

			out[i] = v
		}

		return out, nil
	case *lang.DictLit:
		out := make(map[string]any, len(e.Keys))

		for i, k := range e.Keys {
			kv, err := ctx.eval(k, frame)
			if err != nil {
				return nil, err
			}

			ks, ok := kv.(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}

			vv, err := ctx.eval(e.Values[i], frame)
			if err != nil {
				return nil, err
			}

			out[ks] = vv
		}

		return out, nil
	case *lang.Lambda:
		body := e.Body
		params := e.Params

		return BuiltinFunc(func(args []any, kwargs map[string]any) (any, error) {
			callFrame := newCallFrame(ctx.Globals)

			for i, p := range params {
				if i < len(args) {
					callFrame.vars[p] = args[i]
				}
			}

			for k, v := range kwargs {
				callFrame.vars[k] = v
			}

			return ctx.eval(body, callFrame)
		}), nil
	case *lang.UnaryOp:
		return ctx.evalUnary(e, frame)
	case *lang.BinOp:
		return ctx.evalBinOp(e, frame)
	case *lang.BoolOp:
		return ctx.evalBoolOp(e, frame)
	case *lang.Compare:
		return ctx.evalCompare(e, frame)
	case *lang.Call:
		return ctx.evalCall(e, frame)
	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

func (ctx *ExecutionContext) evalAttr(base any, attr string) (any, error) {
	switch b := base.(type) {
	case Namespace:
		if v, ok := b.Attr(attr); ok {
			return v, nil
		}

		return nil, fmt.Errorf("no attribute %q", attr)
	case DotMap:
		if v, ok := b[attr]; ok {
			return v, nil
		}

		return nil, fmt.Errorf("no attribute %q", attr)
	default:
		return nil, fmt.Errorf("%T object has no attribute %q", base, attr)
	}
}

func (ctx *ExecutionContext) evalSubscript(e *lang.Subscript, frame *Frame) (any, error) {
	base, err := ctx.eval(e.Value, frame)
	if err != nil {
		return nil, err
	}

	idx, err := ctx.eval(e.Index, frame)
	if err != nil {
		return nil, err
	}

	switch container := base.(type) {
	case []any:
		i, ok := idx.(int64)
		if !ok {
			return nil, fmt.Errorf("list indices must be integers")
		}

		if i < 0 {
			i += int64(len(container))
		}

		if i < 0 || int(i) >= len(container) {
			return nil, fmt.Errorf("list index out of range")
		}

		return container[i], nil
	case map[string]any:
		key, ok := idx.(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}

		v, ok := container[key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", key)
		}

		return v, nil
	case DotMap:
		key, ok := idx.(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}

		v, ok := container[key]
		if !ok {
			return nil, fmt.Errorf("key %q not found", key)
		}

		return v, nil
	case string:
		i, ok := idx.(int64)
		if !ok || i < 0 || int(i) >= len(container) {
			return nil, fmt.Errorf("string index out of range")
		}

		return string(container[i]), nil
	default:
		return nil, fmt.Errorf("%T object is not subscriptable", base)
	}
}

func (ctx *ExecutionContext) evalUnary(e *lang.UnaryOp, frame *Frame) (any, error) {
	v, err := ctx.eval(e.X, frame)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case lang.NOT:
		return !truthy(v), nil
	case lang.MINUS:
		switch n := v.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		default:
			return nil, fmt.Errorf("bad operand type for unary -: %T", v)
		}
	case lang.PLUS:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator")
	}
}

func isInt(v any) (int64, bool) { n, ok := v.(int64); return n, ok }

func (ctx *ExecutionContext) evalBinOp(e *lang.BinOp, frame *Frame) (any, error) {
	left, err := ctx.eval(e.Left, frame)
	if err != nil {
		return nil, err
	}

	right, err := ctx.eval(e.Right, frame)
	if err != nil {
		return nil, err
	}

	if e.Op == lang.PLUS {
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}

		if ll, ok := left.([]any); ok {
			if rl, ok := right.([]any); ok {
				out := make([]any, 0, len(ll)+len(rl))
				out = append(out, ll...)
				out = append(out, rl...)

				return out, nil
			}
		}
	}

	li, lInt := isInt(left)
	ri, rInt := isInt(right)

	if lInt && rInt {
		out, err := intArith(e.Op, li, ri)
		if err == nil {
			return out, nil
		}
	}

	lf, lok := toFloat(left)
	rf, rok := toFloat(right)

	if !lok || !rok {
		return nil, fmt.Errorf("unsupported operand type(s) for %v: %T and %T", e.Op, left, right)
	}

	return floatArith(e.Op, lf, rf)
}

func intArith(op lang.TokenType, a, b int64) (int64, error) {
	switch op {
	case lang.PLUS:
		return a + b, nil
	case lang.MINUS:
		return a - b, nil
	case lang.STAR:
		return a * b, nil
	case lang.DSLASH:
		if b == 0 {
			return 0, fmt.Errorf("integer division or modulo by zero")
		}

		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}

		return q, nil
	case lang.PERCENT:
		if b == 0 {
			return 0, fmt.Errorf("integer division or modulo by zero")
		}

		m := a % b
		if m != 0 && ((a < 0) != (b < 0)) {
			m += b
		}

		return m, nil
	case lang.DSTAR:
		if b < 0 {
			return 0, fmt.Errorf("negative exponent needs float power")
		}

		result := int64(1)
		for i := int64(0); i < b; i++ {
			result *= a
		}

		return result, nil
	default:
		return 0, fmt.Errorf("not an integer operator")
	}
}

func floatArith(op lang.TokenType, a, b float64) (any, error) {
	switch op {
	case lang.PLUS:
		return a + b, nil
	case lang.MINUS:
		return a - b, nil
	case lang.STAR:
		return a * b, nil
	case lang.SLASH:
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}

		return a / b, nil
	case lang.DSLASH:
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}

		return math.Floor(a / b), nil
	case lang.PERCENT:
		if b == 0 {
			return nil, fmt.Errorf("division by zero")
		}

		return math.Mod(a, b), nil
	case lang.DSTAR:
		return math.Pow(a, b), nil
	default:
		return nil, fmt.Errorf("unsupported operator")
	}
}

func (ctx *ExecutionContext) evalBoolOp(e *lang.BoolOp, frame *Frame) (any, error) {
	var last any

	for _, v := range e.Values {
		val, err := ctx.eval(v, frame)
		if err != nil {
			return nil, err
		}

		last = val

		if e.Op == lang.AND && !truthy(val) {
			return val, nil
		}

		if e.Op == lang.OR && truthy(val) {
			return val, nil
		}
	}

	return last, nil
}

func (ctx *ExecutionContext) evalCompare(e *lang.Compare, frame *Frame) (any, error) {
	left, err := ctx.eval(e.Left, frame)
	if err != nil {
		return nil, err
	}

	for i, op := range e.Ops {
		right, err := ctx.eval(e.Comps[i], frame)
		if err != nil {
			return nil, err
		}

		ok, err := compareValues(op, left, right)
		if err != nil {
			return nil, err
		}

		if !ok {
			return false, nil
		}

		left = right
	}

	return true, nil
}

func compareValues(op lang.TokenType, a, b any) (bool, error) {
	if op == lang.EQ {
		return valuesEqual(a, b), nil
	}

	if op == lang.NEQ {
		return !valuesEqual(a, b), nil
	}

	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch op {
			case lang.LT:
				return as < bs, nil
			case lang.GT:
				return as > bs, nil
			case lang.LE:
				return as <= bs, nil
			case lang.GE:
				return as >= bs, nil
			}
		}
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)

	if !aok || !bok {
		return false, fmt.Errorf("unsupported comparison between %T and %T", a, b)
	}

	switch op {
	case lang.LT:
		return af < bf, nil
	case lang.GT:
		return af > bf, nil
	case lang.LE:
		return af <= bf, nil
	case lang.GE:
		return af >= bf, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator")
	}
}

func valuesEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}

	return a == b
}

func (ctx *ExecutionContext) evalCall(e *lang.Call, frame *Frame) (any, error) {
	callee, err := ctx.eval(e.Func, frame)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(e.Args))

	for i, a := range e.Args {
		v, err := ctx.eval(a, frame)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	kwargs := make(map[string]any, len(e.KwNames))

	for i, name := range e.KwNames {
		v, err := ctx.eval(e.KwValues[i], frame)
		if err != nil {
			return nil, err
		}

		kwargs[name] = v
	}

	switch fn := callee.(type) {
	case BuiltinFunc:
		val, err := fn(args, kwargs)
		if err != nil {
			var de *denyError
			if as, ok := err.(*denyError); ok {
				de = as

				return nil, ctx.notAllowed(e, de.name, err)
			}

			return nil, err
		}

		return val, nil
	case *Function:
		return ctx.callFunction(fn, args, kwargs)
	default:
		return nil, fmt.Errorf("%T object is not callable", callee)
	}
}

func (ctx *ExecutionContext) callFunction(fn *Function, args []any, kwargs map[string]any) (any, error) {
	if len(args) > len(fn.Params) {
		return nil, fmt.Errorf("%s() takes %d positional arguments but %d were given", fn.Name, len(fn.Params), len(args))
	}

	callFrame := newCallFrame(ctx.Globals)

	for i, p := range fn.Params {
		if i < len(args) {
			callFrame.vars[p] = args[i]
		}
	}

	for name, v := range kwargs {
		found := false

		for _, p := range fn.Params {
			if p == name {
				callFrame.vars[name] = v
				found = true

				break
			}
		}

		if !found {
			return nil, fmt.Errorf("%s() got an unexpected keyword argument %q", fn.Name, name)
		}
	}

	err := ctx.execBlock(fn.Body, callFrame)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.value, nil
		}

		return nil, err
	}

	return nil, nil
}

package engine

import (
	"fmt"
	"sort"
)

// baseGlobals and deniedBuiltinNames implement spec's restricted
// global scope: a small allow-list of host built-ins, plus an explicit
// deny-list installed as always-raising shims so a script that reaches for
// dynamic evaluation, the filesystem, or module loading gets a typed
// NotAllowedError instead of an "unknown name" surprise.
var deniedBuiltinNames = []string{
	"eval", "exec", "compile", "__import__", "open",
	"getattr", "setattr", "delattr", "globals", "locals", "vars",
}

func baseGlobals() map[string]any {
	g := make(map[string]any, len(deniedBuiltinNames)+16)

	g["len"] = BuiltinFunc(builtinLen)
	g["range"] = BuiltinFunc(builtinRange)
	g["print"] = BuiltinFunc(builtinPrint)
	g["abs"] = BuiltinFunc(builtinAbs)
	g["min"] = BuiltinFunc(builtinMin)
	g["max"] = BuiltinFunc(builtinMax)
	g["sum"] = BuiltinFunc(builtinSum)
	g["sorted"] = BuiltinFunc(builtinSorted)
	g["enumerate"] = BuiltinFunc(builtinEnumerate)
	g["isinstance"] = BuiltinFunc(builtinIsInstance)
	g["int"] = BuiltinFunc(builtinInt)
	g["float"] = BuiltinFunc(builtinFloat)
	g["str"] = BuiltinFunc(builtinStr)
	g["bool"] = BuiltinFunc(builtinBool)
	g["list"] = BuiltinFunc(builtinList)
	g["dict"] = BuiltinFunc(builtinDict)

	for _, name := range deniedBuiltinNames {
		name := name
		g[name] = BuiltinFunc(func(args []any, kwargs map[string]any) (any, error) {
			return nil, &denyError{name: name}
		})
	}

	return g
}

func argAt(args []any, i int) (any, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}

	return args[i], true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}

	return 0, false
}

func builtinLen(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return nil, fmt.Errorf("len expects 1 argument")
	}

	switch x := v.(type) {
	case string:
		return int64(len(x)), nil
	case []any:
		return int64(len(x)), nil
	case map[string]any:
		return int64(len(x)), nil
	case DotMap:
		return int64(len(x)), nil
	default:
		return nil, fmt.Errorf("object of type %T has no len()", v)
	}
}

func builtinRange(args []any, _ map[string]any) (any, error) {
	var start, stop, step int64 = 0, 0, 1

	ints := make([]int64, 0, len(args))

	for _, a := range args {
		n, ok := a.(int64)
		if !ok {
			return nil, fmt.Errorf("range expects integer arguments")
		}

		ints = append(ints, n)
	}

	switch len(ints) {
	case 1:
		stop = ints[0]
	case 2:
		start, stop = ints[0], ints[1]
	case 3:
		start, stop, step = ints[0], ints[1], ints[2]
	default:
		return nil, fmt.Errorf("range expects 1 to 3 arguments")
	}

	if step == 0 {
		return nil, fmt.Errorf("range step must not be zero")
	}

	var out []any
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}

	return out, nil
}

func builtinPrint(args []any, _ map[string]any) (any, error) {
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a
	}

	fmt.Println(vals...)

	return nil, nil
}

func builtinAbs(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return nil, fmt.Errorf("abs expects 1 argument")
	}

	switch n := v.(type) {
	case int64:
		if n < 0 {
			return -n, nil
		}

		return n, nil
	case float64:
		if n < 0 {
			return -n, nil
		}

		return n, nil
	default:
		return nil, fmt.Errorf("abs() argument must be numeric")
	}
}

func numericArgs(args []any) ([]float64, bool) {
	out := make([]float64, len(args))

	for i, a := range args {
		f, ok := toFloat(a)
		if !ok {
			return nil, false
		}

		out[i] = f
	}

	return out, true
}

func builtinMin(args []any, _ map[string]any) (any, error) {
	items := args
	if len(items) == 1 {
		if list, ok := items[0].([]any); ok {
			items = list
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("min() arg is an empty sequence")
	}

	best := items[0]
	bestF, ok := toFloat(best)

	if !ok {
		return nil, fmt.Errorf("min() requires numeric arguments")
	}

	for _, it := range items[1:] {
		f, ok := toFloat(it)
		if !ok {
			return nil, fmt.Errorf("min() requires numeric arguments")
		}

		if f < bestF {
			best, bestF = it, f
		}
	}

	return best, nil
}

func builtinMax(args []any, _ map[string]any) (any, error) {
	items := args
	if len(items) == 1 {
		if list, ok := items[0].([]any); ok {
			items = list
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("max() arg is an empty sequence")
	}

	best := items[0]
	bestF, ok := toFloat(best)

	if !ok {
		return nil, fmt.Errorf("max() requires numeric arguments")
	}

	for _, it := range items[1:] {
		f, ok := toFloat(it)
		if !ok {
			return nil, fmt.Errorf("max() requires numeric arguments")
		}

		if f > bestF {
			best, bestF = it, f
		}
	}

	return best, nil
}

func builtinSum(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return nil, fmt.Errorf("sum expects 1 argument")
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("sum() argument must be a list")
	}

	nums, ok := numericArgs(list)
	if !ok {
		return nil, fmt.Errorf("sum() requires numeric elements")
	}

	var total float64

	allInt := true

	for i, n := range nums {
		total += n

		if _, isInt := list[i].(int64); !isInt {
			allInt = false
		}
	}

	if allInt {
		return int64(total), nil
	}

	return total, nil
}

func builtinSorted(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return nil, fmt.Errorf("sorted expects 1 argument")
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("sorted() argument must be a list")
	}

	out := make([]any, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		fi, iok := toFloat(out[i])
		fj, jok := toFloat(out[j])

		if iok && jok {
			return fi < fj
		}

		si, _ := out[i].(string)
		sj, _ := out[j].(string)

		return si < sj
	})

	return out, nil
}

func builtinEnumerate(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return nil, fmt.Errorf("enumerate expects 1 argument")
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("enumerate() argument must be a list")
	}

	out := make([]any, len(list))
	for i, item := range list {
		out[i] = []any{int64(i), item}
	}

	return out, nil
}

func builtinIsInstance(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return nil, fmt.Errorf("isinstance expects 2 arguments")
	}

	kind, ok := argAt(args, 1)
	if !ok {
		return nil, fmt.Errorf("isinstance expects 2 arguments")
	}

	name, ok := kind.(string)
	if !ok {
		return nil, fmt.Errorf("isinstance() second argument must name a type")
	}

	switch name {
	case "int":
		_, is := v.(int64)

		return is, nil
	case "float":
		_, is := v.(float64)

		return is, nil
	case "str":
		_, is := v.(string)

		return is, nil
	case "bool":
		_, is := v.(bool)

		return is, nil
	case "list":
		_, is := v.([]any)

		return is, nil
	case "dict":
		_, is := v.(map[string]any)
		if !is {
			_, is = v.(DotMap)
		}

		return is, nil
	default:
		return false, nil
	}
}

func builtinInt(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return int64(0), nil
	}

	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case bool:
		if n {
			return int64(1), nil
		}

		return int64(0), nil
	case string:
		var i int64

		_, err := fmt.Sscanf(n, "%d", &i)
		if err != nil {
			return nil, fmt.Errorf("invalid literal for int(): %q", n)
		}

		return i, nil
	default:
		return nil, fmt.Errorf("int() argument must be a string or a number")
	}
}

func builtinFloat(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return float64(0), nil
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case string:
		var f float64

		_, err := fmt.Sscanf(n, "%g", &f)
		if err != nil {
			return nil, fmt.Errorf("invalid literal for float(): %q", n)
		}

		return f, nil
	default:
		return nil, fmt.Errorf("float() argument must be a string or a number")
	}
}

func builtinStr(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return "", nil
	}

	return stringify(v), nil
}

func builtinBool(args []any, _ map[string]any) (any, error) {
	v, ok := argAt(args, 0)
	if !ok {
		return false, nil
	}

	return truthy(v), nil
}

func builtinList(args []any, _ map[string]any) (any, error) {
	if len(args) == 0 {
		return []any{}, nil
	}

	if list, ok := args[0].([]any); ok {
		out := make([]any, len(list))
		copy(out, list)

		return out, nil
	}

	return nil, fmt.Errorf("list() argument must be a list")
}

func builtinDict(_ []any, kwargs map[string]any) (any, error) {
	out := make(map[string]any, len(kwargs))
	for k, v := range kwargs {
		out[k] = v
	}

	return out, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return x
	case bool:
		if x {
			return "True"
		}

		return "False"
	default:
		return fmt.Sprintf("%v", x)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case DotMap:
		return len(x) > 0
	default:
		return true
	}
}

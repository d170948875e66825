// Package validator implements the Parser/Validator core component: turning
// source text into a classified, rule-checked script.Script, or a typed
// parse/validation error pinned to the offending node's location.
package validator

import (
	"regexp"

	"github.com/JungleDome/FirScript/internal/lang"
	"github.com/JungleDome/FirScript/internal/script"
	goerrors "github.com/JungleDome/FirScript/pkg/errors"
)

var reservedName = regexp.MustCompile(`^__.+__$`)

// Parse runs the full classify-then-validate pipeline over source and
// returns an immutable script.Script, or the first typed error encountered.
// kind, if non-empty, is the caller-asserted kind; it is accepted only when
// it does not conflict with what the syntax tree would classify to.
func Parse(source, scriptID string, kind script.Kind) (*script.Script, error) {
	prog, err := lang.Parse(source)
	if err != nil {
		if le, ok := err.(*lang.LexError); ok {
			return nil, goerrors.NewParseError(scriptID, le.Line, le.Col, le.Message)
		}

		pe, ok := err.(*lang.ParseError)
		if !ok {
			return nil, goerrors.NewParseError(scriptID, 0, 0, err.Error())
		}

		return nil, goerrors.NewParseError(scriptID, pe.Line, pe.Col, pe.Message)
	}

	shape := classify(prog)

	resolvedKind, err := resolveKind(scriptID, shape, kind)
	if err != nil {
		return nil, err
	}

	meta := script.Metadata{ID: scriptID, Name: scriptID, Kind: resolvedKind}
	meta.Exports, meta.Imports = extractMetadata(prog, resolvedKind)

	if err := validate(scriptID, resolvedKind, prog, meta); err != nil {
		return nil, err
	}

	return script.New(source, meta, prog), nil
}

// shape captures the classification predicate's four syntactic facts.
type shape struct {
	hasSetup     bool
	hasProcess   bool
	usesStrategy bool
	hasExport    bool
}

func classify(prog *lang.Program) shape {
	var s shape

	for _, stmt := range prog.Body {
		if fd, ok := stmt.(*lang.FunctionDef); ok {
			switch fd.Name {
			case "setup":
				s.hasSetup = true
			case "process":
				s.hasProcess = true
			}
		}

		if assign, ok := stmt.(*lang.Assign); ok {
			if name, ok := assign.Target.(*lang.Name); ok && name.Ident == "export" {
				s.hasExport = true
			}
		}
	}

	s.usesStrategy = referencesStrategyRoot(prog.Body)

	return s
}

// referencesStrategyRoot walks every statement and expression looking for an
// Attribute whose root Name is "strategy", anywhere in the tree (not only at
// top level), matching spec.md's "the tree contains any attribute access
// whose root identifier is strategy".
func referencesStrategyRoot(stmts []lang.Stmt) bool {
	found := false

	walkStmts(stmts, func(n lang.Node) {
		if attr, ok := n.(*lang.Attribute); ok {
			if rootIsStrategy(attr) {
				found = true
			}
		}
	})

	return found
}

func rootIsStrategy(attr *lang.Attribute) bool {
	cur := attr.Value

	for {
		switch v := cur.(type) {
		case *lang.Name:
			return v.Ident == "strategy"
		case *lang.Attribute:
			cur = v.Value
		default:
			return false
		}
	}
}

func resolveKind(scriptID string, s shape, asserted script.Kind) (script.Kind, error) {
	switch {
	case s.hasSetup && s.hasProcess && s.usesStrategy:
		return script.KindStrategy, nil
	case s.hasSetup && s.hasProcess && !s.usesStrategy:
		return script.KindIndicator, nil
	case !s.hasSetup && !s.hasProcess && s.hasExport:
		return script.KindLibrary, nil
	}

	if asserted != "" {
		return asserted, nil
	}

	if !s.hasSetup && !s.hasProcess && !s.hasExport {
		return "", goerrors.NewMissingKindError(scriptID, 0, 0, "script matches no kind: no setup/process pair and no top-level export")
	}

	return "", goerrors.NewConflictingKindError(scriptID, 0, 0, "script partially matches more than one kind (e.g. only one of setup/process defined)")
}

func extractMetadata(prog *lang.Program, kind script.Kind) (map[string]struct{}, map[string]string) {
	exports := map[string]struct{}{}
	imports := map[string]string{}

	for _, stmt := range prog.Body {
		assign, ok := stmt.(*lang.Assign)
		if !ok {
			continue
		}

		name, ok := assign.Target.(*lang.Name)
		if !ok {
			continue
		}

		if name.Ident == "export" || kind == script.KindLibrary {
			exports[name.Ident] = struct{}{}
		}

		if call, ok := assign.Value.(*lang.Call); ok {
			if callee, ok := call.Func.(*lang.Name); ok && callee.Ident == "import_script" && len(call.Args) == 1 {
				if strLit, ok := call.Args[0].(*lang.Constant); ok && strLit.Kind == lang.STRING {
					if src, ok := strLit.Value.(string); ok {
						imports[name.Ident] = src
					}
				}
			}
		}
	}

	return exports, imports
}

func validate(scriptID string, kind script.Kind, prog *lang.Program, meta script.Metadata) error {
	if err := validateReservedNames(scriptID, prog); err != nil {
		return err
	}

	switch kind {
	case script.KindStrategy, script.KindIndicator:
		if !hasTopLevelFunc(prog, "setup") || !hasTopLevelFunc(prog, "process") {
			return goerrors.NewMissingRequiredFunctionsError(scriptID, 0, 0, "strategy/indicator scripts must define both setup and process at top level")
		}

		if kind == script.KindIndicator {
			if node := findStrategyReference(prog.Body); node != nil {
				line, col := node.Pos()

				return goerrors.NewStrategyFunctionInIndicatorError(scriptID, line, col, "indicator scripts may not reference strategy.*")
			}
		}

		if err := validateTopLevelAssignments(scriptID, prog); err != nil {
			return err
		}

		if err := validateInputUsage(scriptID, prog); err != nil {
			return err
		}
	case script.KindLibrary:
		if hasTopLevelFunc(prog, "setup") || hasTopLevelFunc(prog, "process") {
			return goerrors.NewStrategyGlobalVariableError(scriptID, 0, 0, "library scripts may not define setup/process")
		}

		if node := findStrategyReference(prog.Body); node != nil {
			line, col := node.Pos()

			return goerrors.NewStrategyFunctionInIndicatorError(scriptID, line, col, "library scripts may not reference strategy.*")
		}

		count := 0

		var last lang.Node

		for _, stmt := range prog.Body {
			assign, ok := stmt.(*lang.Assign)
			if !ok {
				continue
			}

			if name, ok := assign.Target.(*lang.Name); ok && name.Ident == "export" {
				count++
				last = stmt
			}
		}

		if count == 0 {
			return goerrors.NewNoExportsError(scriptID, 0, 0, "library must assign export exactly once at top level")
		}

		if count > 1 {
			line, col := last.Pos()

			return goerrors.NewMultipleExportsError(scriptID, line, col, "library assigns export more than once at top level")
		}

		if err := validateInputUsage(scriptID, prog); err != nil {
			return err
		}
	}

	return nil
}

func hasTopLevelFunc(prog *lang.Program, name string) bool {
	for _, stmt := range prog.Body {
		if fd, ok := stmt.(*lang.FunctionDef); ok && fd.Name == name {
			return true
		}
	}

	return false
}

// findStrategyReference walks the whole tree (not just top level) looking
// for the first Attribute rooted at `strategy`.
func findStrategyReference(stmts []lang.Stmt) lang.Node {
	var found lang.Node

	walkStmts(stmts, func(n lang.Node) {
		if found != nil {
			return
		}

		if attr, ok := n.(*lang.Attribute); ok && rootIsStrategy(attr) {
			found = attr
		}
	})

	return found
}

// validateTopLevelAssignments enforces that a strategy/indicator's top level
// contains only def, export = ..., and import_script-bound assignments.
func validateTopLevelAssignments(scriptID string, prog *lang.Program) error {
	for _, stmt := range prog.Body {
		assign, ok := stmt.(*lang.Assign)
		if !ok {
			continue
		}

		name, ok := assign.Target.(*lang.Name)
		if !ok {
			line, col := stmt.Pos()

			return goerrors.NewStrategyGlobalVariableError(scriptID, line, col, "top-level assignment target must be a bare name")
		}

		if name.Ident == "export" {
			continue
		}

		if call, ok := assign.Value.(*lang.Call); ok {
			if callee, ok := call.Func.(*lang.Name); ok && callee.Ident == "import_script" {
				continue
			}
		}

		line, col := stmt.Pos()

		return goerrors.NewStrategyGlobalVariableError(scriptID, line, col, "strategy/indicator scripts may not bind top-level globals other than export or import_script results")
	}

	return nil
}

// validateInputUsage enforces that input.*(...) calls appear only inside a
// top-level setup() body.
func validateInputUsage(scriptID string, prog *lang.Program) error {
	for _, stmt := range prog.Body {
		fd, isFunc := stmt.(*lang.FunctionDef)

		if isFunc && fd.Name == "setup" {
			continue
		}

		if node := findInputCall(stmtNodes(stmt)); node != nil {
			line, col := node.Pos()

			return goerrors.NewInvalidInputUsageError(scriptID, line, col, "input.* may only be called inside setup()")
		}
	}

	return nil
}

func findInputCall(nodes []lang.Node) lang.Node {
	for _, n := range nodes {
		if call, ok := n.(*lang.Call); ok {
			if attr, ok := call.Func.(*lang.Attribute); ok {
				if root, ok := attr.Value.(*lang.Name); ok && root.Ident == "input" {
					return call
				}
			}
		}
	}

	return nil
}

// stmtNodes flattens one statement (and everything nested inside it) into a
// node list for a simple linear scan, used by the input-usage check.
func stmtNodes(stmt lang.Stmt) []lang.Node {
	var out []lang.Node

	walkStmts([]lang.Stmt{stmt}, func(n lang.Node) {
		out = append(out, n)
	})

	return out
}

func validateReservedNames(scriptID string, prog *lang.Program) error {
	for _, stmt := range prog.Body {
		assign, ok := stmt.(*lang.Assign)
		if !ok {
			continue
		}

		name, ok := assign.Target.(*lang.Name)
		if !ok {
			continue
		}

		if reservedName.MatchString(name.Ident) {
			line, col := stmt.Pos()

			return goerrors.NewReservedVariableNameError(scriptID, line, col, "reserved name "+name.Ident+" may not be bound at top level")
		}

		if name.Ident == "export" {
			if err := checkExportValueReserved(scriptID, assign.Value); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkExportValueReserved(scriptID string, expr lang.Expr) error {
	if name, ok := expr.(*lang.Name); ok && reservedName.MatchString(name.Ident) {
		line, col := expr.Pos()

		return goerrors.NewReservedVariableNameError(scriptID, line, col, "export may not reference the reserved name "+name.Ident)
	}

	if dict, ok := expr.(*lang.DictLit); ok {
		for _, k := range dict.Keys {
			if cst, ok := k.(*lang.Constant); ok && cst.Kind == lang.STRING {
				if s, ok := cst.Value.(string); ok && reservedName.MatchString(s) {
					line, col := k.Pos()

					return goerrors.NewReservedVariableNameError(scriptID, line, col, "export dict key "+s+" is a reserved name")
				}
			}
		}
	}

	return nil
}

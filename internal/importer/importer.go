// Package importer implements the Importer core component: a named pool of
// scripts, main-script designation, and lazy, cycle-detected, memoized
// resolution of import_script(name) calls from running scripts.
package importer

import (
	"github.com/google/uuid"

	"github.com/JungleDome/FirScript/internal/engine"
	"github.com/JungleDome/FirScript/internal/registry"
	"github.com/JungleDome/FirScript/internal/script"
	"github.com/JungleDome/FirScript/internal/validator"
	goerrors "github.com/JungleDome/FirScript/pkg/errors"
)

// Importer owns the named script pool and drives ExecutionContext
// construction for both the main script and anything it imports.
type Importer struct {
	registry *registry.Registry

	scripts   map[string]*script.Script
	mainName  string
	importStk []string
	resolved  map[string]any
	ctxByName map[string]*engine.ExecutionContext
}

// New constructs an Importer bound to reg; reg supplies the namespace
// bundle for every ExecutionContext this importer builds.
func New(reg *registry.Registry) *Importer {
	return &Importer{
		registry:  reg,
		scripts:   map[string]*script.Script{},
		resolved:  map[string]any{},
		ctxByName: map[string]*engine.ExecutionContext{},
	}
}

// AddScript registers a prebuilt script.Script under its own metadata ID.
// If isMain is set, or this is the first (and so far only) script
// registered, it becomes the designated main script.
func (im *Importer) AddScript(s *script.Script, isMain bool) {
	im.scripts[s.Metadata.ID] = s

	if isMain || im.mainName == "" {
		im.mainName = s.Metadata.ID
	}
}

// AddSource parses source under name/kind via the validator and registers
// the resulting script.Script exactly as AddScript would. An empty name
// gets a generated id (a driver registering ad hoc/inline scripts, e.g. a
// REPL, need not invent a unique name itself).
func (im *Importer) AddSource(name, source string, kind script.Kind, isMain bool) error {
	if name == "" {
		name = "script-" + uuid.NewString()
	}

	s, err := validator.Parse(source, name, kind)
	if err != nil {
		return err
	}

	im.AddScript(s, isMain)

	return nil
}

// BuildMainScript constructs and compiles the designated main script's
// ExecutionContext, with a namespace bundle from the registry plus an
// import_script capability bound to this importer.
func (im *Importer) BuildMainScript() (*engine.ExecutionContext, error) {
	if im.mainName == "" {
		return nil, goerrors.NewEntrypointNotFoundError()
	}

	return im.buildContext(im.mainName)
}

func (im *Importer) buildContext(name string) (*engine.ExecutionContext, error) {
	s, ok := im.scripts[name]
	if !ok {
		return nil, goerrors.NewScriptNotFoundError(name)
	}

	namespaces := im.registry.Build()

	ctx := engine.NewExecutionContext(s, namespaces)
	ctx.Globals["import_script"] = engine.BuiltinFunc(im.importScriptBuiltin)

	if err := ctx.Compile(); err != nil {
		return nil, err
	}

	im.ctxByName[name] = ctx

	return ctx, nil
}

func (im *Importer) importScriptBuiltin(args []any, _ map[string]any) (any, error) {
	if len(args) != 1 {
		return nil, goerrors.NewScriptRuntimeError("", "import_script", 0, "", 0, "import_script expects 1 argument")
	}

	name, ok := args[0].(string)
	if !ok {
		return nil, goerrors.NewScriptRuntimeError("", "import_script", 0, "", 0, "import_script argument must be a string")
	}

	return im.ImportScript(name)
}

// ImportScript is the capability exposed to running scripts as the global
// `import_script` builtin. It memoizes per name, detects cycles via the
// import stack, and returns either a library's export value or the
// imported script's own ExecutionContext (for indicators/strategies).
func (im *Importer) ImportScript(name string) (any, error) {
	if v, ok := im.resolved[name]; ok {
		return v, nil
	}

	for _, onStack := range im.importStk {
		if onStack == name {
			current := name
			if len(im.importStk) > 0 {
				current = im.importStk[len(im.importStk)-1]
			}

			return nil, goerrors.NewCircularImportError(current, name)
		}
	}

	s, ok := im.scripts[name]
	if !ok {
		return nil, goerrors.NewScriptNotFoundError(name)
	}

	im.importStk = append(im.importStk, name)
	defer im.popStack()

	ctx, err := im.buildContext(s.Metadata.ID)
	if err != nil {
		return nil, err
	}

	var value any

	switch s.Metadata.Kind {
	case script.KindLibrary:
		exported, _ := ctx.GetExport()
		value = exported
	default:
		if err := ctx.RunSetup(); err != nil {
			return nil, err
		}

		value = ctx
	}

	im.resolved[name] = value

	return value, nil
}

// Context returns the previously-built ExecutionContext registered under
// name, if BuildMainScript or ImportScript has constructed one.
func (im *Importer) Context(name string) (*engine.ExecutionContext, bool) {
	ctx, ok := im.ctxByName[name]

	return ctx, ok
}

func (im *Importer) popStack() {
	if len(im.importStk) == 0 {
		return
	}

	im.importStk = im.importStk[:len(im.importStk)-1]
}

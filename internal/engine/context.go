package engine

import (
	"strings"

	"github.com/JungleDome/FirScript/internal/lang"
	"github.com/JungleDome/FirScript/internal/script"
	"github.com/JungleDome/FirScript/internal/version"
	goerrors "github.com/JungleDome/FirScript/pkg/errors"
)

// ExecutionContext is the runtime home of one compiled script: its parsed
// program, its namespace bindings, and the single shared globals map that
// setup()/process()/export all read and write. The importer builds one
// ExecutionContext each time it compiles a script; because it memoizes
// import_script resolutions, a library imported by several scripts through
// the same importer is compiled once and shares a single context.
type ExecutionContext struct {
	// Source is the script's own source text, used for runtime error
	// line-text lookups.
	Source string
	// DisplayName identifies this context in error messages — typically the
	// registration name the importer or registry gave the script.
	DisplayName string
	// Namespaces holds every registered namespace object keyed by the name
	// scripts reach it through (`ta`, `data`, `strategy`, ...).
	Namespaces map[string]Namespace

	program *lang.Program
	lines   []string

	// Globals is the single associative container used as both the global
	// and local environment at top level, per the engine's scoping model.
	Globals map[string]any

	top *Frame
}

// NewExecutionContext builds a context for src, wiring namespaces into the
// globals map alongside the restricted builtin scope so script code can
// reach both with plain name lookups.
func NewExecutionContext(src *script.Script, namespaces map[string]Namespace) *ExecutionContext {
	ctx := &ExecutionContext{
		Source:      src.Source,
		DisplayName: src.Metadata.ID,
		Namespaces:  namespaces,
		program:     src.Program,
		lines:       strings.Split(src.Source, "\n"),
		Globals:     baseGlobals(),
	}

	for name, ns := range namespaces {
		ctx.Globals[name] = ns
	}

	ctx.top = newTopFrame(ctx.Globals)

	return ctx
}

func (ctx *ExecutionContext) sourceLine(line int) string {
	if line < 1 || line > len(ctx.lines) {
		return ""
	}

	return ctx.lines[line-1]
}

// Compile checks the optional __engine_version__ top-level binding (a bare
// string constant assigned at top level) against the host engine version,
// then executes every top-level statement in order, binding setup/process,
// helper functions and exported names into Globals; setup and process are
// bound here but not called. The validator rejects top-level bindings of
// __x__-style names, so only a Script built directly with script.New can
// carry __engine_version__. Scripts that declare neither setup nor process
// (libraries) are fully evaluated here: their export assignment happens
// during Compile.
func (ctx *ExecutionContext) Compile() error {
	if v, ok := ctx.declaredEngineVersion(); ok {
		if err := version.CheckVersionCompatibility(version.Version, v); err != nil {
			return goerrors.NewCompilationError(ctx.DisplayName, ctx.DisplayName, 1, "", 0, err.Error())
		}
	}

	for _, stmt := range ctx.program.Body {
		if fd, ok := stmt.(*lang.FunctionDef); ok && (fd.Name == "setup" || fd.Name == "process") {
			if err := ctx.exec(fd, ctx.top); err != nil {
				return ctx.wrapCompileErr(err)
			}

			continue
		}

		if err := ctx.exec(stmt, ctx.top); err != nil {
			return ctx.wrapCompileErr(err)
		}
	}

	return nil
}

func (ctx *ExecutionContext) wrapCompileErr(err error) error {
	if _, ok := err.(goerrors.ScriptEngineError); ok {
		return err
	}

	return goerrors.NewCompilationError(ctx.DisplayName, ctx.DisplayName, 0, "", 0, err.Error())
}

func (ctx *ExecutionContext) declaredEngineVersion() (string, bool) {
	for _, stmt := range ctx.program.Body {
		assign, ok := stmt.(*lang.Assign)
		if !ok {
			continue
		}

		name, ok := assign.Target.(*lang.Name)
		if !ok || name.Ident != "__engine_version__" {
			continue
		}

		cst, ok := assign.Value.(*lang.Constant)
		if !ok {
			continue
		}

		s, ok := cst.Value.(string)

		return s, ok
	}

	return "", false
}

// RunSetup invokes the script's top-level setup() function, if present. A
// script with no setup() is a no-op success; libraries define none, while
// the validator requires one for every strategy and indicator.
func (ctx *ExecutionContext) RunSetup() error {
	return ctx.callTopLevel("setup")
}

// RunProcess invokes the script's top-level process() function once per bar.
func (ctx *ExecutionContext) RunProcess() error {
	return ctx.callTopLevel("process")
}

func (ctx *ExecutionContext) callTopLevel(name string) error {
	v, ok := ctx.top.Get(name)
	if !ok {
		return nil
	}

	fn, ok := v.(*Function)
	if !ok {
		return goerrors.NewScriptRuntimeError(ctx.DisplayName, ctx.DisplayName, 0, "", 0, name+" is not a function")
	}

	_, err := ctx.callFunction(fn, nil, nil)
	if err != nil {
		return ctx.wrapCompileErr(err)
	}

	return nil
}

// GetExport returns the value bound to `export` at top level. A library
// must have exactly one such binding (enforced by the validator); a flat
// map export is wrapped in a DotMap so importers can use either `lib.key`
// or `lib["key"]` syntax against it.
func (ctx *ExecutionContext) GetExport() (any, bool) {
	v, ok := ctx.top.Get("export")
	if !ok {
		return nil, false
	}

	if m, ok := v.(map[string]any); ok {
		return DotMap(m), true
	}

	return v, true
}

// GenerateOutputs collects GenerateOutput() from every namespace that
// implements OutputGenerator, keyed by namespace name.
func (ctx *ExecutionContext) GenerateOutputs() map[string]any {
	out := map[string]any{}

	for name, ns := range ctx.Namespaces {
		gen, ok := ns.(OutputGenerator)
		if !ok {
			continue
		}

		if v, ok := gen.GenerateOutput(); ok {
			out[name] = v
		}
	}

	return out
}

// GenerateMetadatas collects GenerateMetadata() from every namespace that
// implements MetadataGenerator, keyed by namespace name.
func (ctx *ExecutionContext) GenerateMetadatas() map[string]any {
	out := map[string]any{}

	for name, ns := range ctx.Namespaces {
		gen, ok := ns.(MetadataGenerator)
		if !ok {
			continue
		}

		if v, ok := gen.GenerateMetadata(); ok {
			out[name] = v
		}
	}

	return out
}

// Package facade reinstates the original project's ScriptEngine
// (original_source/script_engine/engine.py) as thin convenience glue over
// the core: Registry + Importer + a bar loop, composed the way
// ScriptEngine.run(bars_df) did. It lives outside internal/engine (which
// must stay exactly spec.md §4.3's ExecutionContext) to avoid an import
// cycle — internal/importer already imports internal/engine, so the
// composition root has to sit a layer above both. Used only by
// cmd/firscript; none of internal/engine, internal/validator, or
// internal/importer import this package.
package facade

import (
	"github.com/JungleDome/FirScript/internal/engine"
	"github.com/JungleDome/FirScript/internal/importer"
	"github.com/JungleDome/FirScript/internal/registry"
	"github.com/JungleDome/FirScript/internal/script"
	"github.com/JungleDome/FirScript/pkg/namespaces/data"
)

// Engine composes a Registry and Importer into the driver-facing surface
// spec.md §6 describes, plus a Run helper that walks a bar slice.
type Engine struct {
	Registry *registry.Registry
	Importer *importer.Importer

	ctx *engine.ExecutionContext
}

// New constructs an Engine over a fresh registry and importer. Call
// RegisterDefaults/Register on Engine.Registry before AddSource/Build.
func New() *Engine {
	reg := registry.New()

	return &Engine{
		Registry: reg,
		Importer: importer.New(reg),
	}
}

// AddSource parses and registers a script exactly as importer.AddSource.
func (e *Engine) AddSource(name, source string, kind script.Kind, isMain bool) error {
	return e.Importer.AddSource(name, source, kind, isMain)
}

// Build constructs and compiles the main script's ExecutionContext and
// stores it for Run to use.
func (e *Engine) Build() (*engine.ExecutionContext, error) {
	ctx, err := e.Importer.BuildMainScript()
	if err != nil {
		return nil, err
	}

	e.ctx = ctx

	return ctx, nil
}

// Run walks bars in order: for each, it pushes the current bar (and the
// frame up to and including it) into the `data` namespace, then calls
// RunProcess. RunSetup must have been called by the caller first, matching
// spec.md §6's driver-facing surface exactly.
func (e *Engine) Run(bars []data.Bar) error {
	dataNS, ok := e.Registry.Get("data")
	if !ok {
		return engineMissingDataNamespace{}
	}

	d, ok := dataNS.(*data.Data)
	if !ok {
		return engineMissingDataNamespace{}
	}

	for i, bar := range bars {
		d.SetCurrentBar(bar)
		d.SetAllBar(bars[:i+1])

		if err := e.ctx.RunProcess(); err != nil {
			return err
		}
	}

	return nil
}

type engineMissingDataNamespace struct{}

func (engineMissingDataNamespace) Error() string {
	return "no *data.Data namespace registered under \"data\""
}

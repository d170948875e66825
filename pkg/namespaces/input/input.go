// Package input implements the default `input` namespace: int/float/bool/
// string(name, default) declarations backed by an overrides map, the
// simplest possible realization of the "input-value backing store" spec.md
// treats as an external collaborator. A Schema() method exposes the
// declared inputs' shape via pkg/utils.GetSchemaFromConfig for a driver that
// wants to render a configuration UI, mirroring the original's dynamic
// UI-bound store without adopting its complexity.
package input

import (
	"github.com/JungleDome/FirScript/internal/engine"
	"github.com/JungleDome/FirScript/pkg/utils"
)

// Declared is one input.<type>(name, default) call recorded for schema
// generation.
type Declared struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default any    `json:"default"`
}

// Input is the default `input` namespace.
type Input struct {
	overrides map[string]any
	declared  []Declared
}

// New constructs an Input namespace; overrides supersede a script's own
// declared default for a given name.
func New(overrides map[string]any) *Input {
	return &Input{overrides: overrides}
}

// Attr implements engine.Namespace.
func (i *Input) Attr(name string) (any, bool) {
	switch name {
	case "int":
		return engine.BuiltinFunc(i.typed("int")), true
	case "float":
		return engine.BuiltinFunc(i.typed("float")), true
	case "bool":
		return engine.BuiltinFunc(i.typed("bool")), true
	case "string":
		return engine.BuiltinFunc(i.typed("string")), true
	default:
		return nil, false
	}
}

func (i *Input) typed(kind string) engine.BuiltinFunc {
	return func(args []any, _ map[string]any) (any, error) {
		if len(args) < 1 {
			return nil, errInputArgs{kind}
		}

		name, ok := args[0].(string)
		if !ok {
			return nil, errInputArgs{kind}
		}

		var def any
		if len(args) > 1 {
			def = args[1]
		}

		i.declared = append(i.declared, Declared{Name: name, Type: kind, Default: def})

		if override, ok := i.overrides[name]; ok {
			return override, nil
		}

		return def, nil
	}
}

// Schema returns a JSON Schema document describing every input declared so
// far, via pkg/utils.GetSchemaFromConfig.
func (i *Input) Schema() (string, error) {
	return utils.GetSchemaFromConfig(i.declared)
}

// GenerateMetadata implements engine.MetadataGenerator: the list of
// declared inputs, for a driver that wants to introspect a script's
// configuration surface without re-parsing it.
func (i *Input) GenerateMetadata() (any, bool) {
	if len(i.declared) == 0 {
		return nil, false
	}

	return i.declared, true
}

type errInputArgs struct{ kind string }

func (e errInputArgs) Error() string { return "input." + e.kind + " expects (name, default?)" }

// Package color implements the default `color` namespace: a constant table
// of named colors plus an rgb/new constructor, a pure value namespace that
// never touches the registry's shared map.
package color

import (
	"fmt"

	"github.com/JungleDome/FirScript/internal/engine"
)

// RGB is a color.rgb(r,g,b)/color.new(name) value.
type RGB struct {
	R, G, B int64
}

func (c RGB) String() string { return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B) }

var named = map[string]RGB{
	"red":    {255, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"orange": {255, 165, 0},
	"purple": {128, 0, 128},
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"gray":   {128, 128, 128},
}

// Color is the default `color` namespace.
type Color struct{}

// New constructs the color namespace.
func New() *Color { return &Color{} }

// Attr implements engine.Namespace: named constants plus rgb/new callables.
func (c *Color) Attr(name string) (any, bool) {
	switch name {
	case "rgb":
		return engine.BuiltinFunc(rgbBuiltin), true
	case "new":
		return engine.BuiltinFunc(newBuiltin), true
	default:
		if v, ok := named[name]; ok {
			return v, true
		}

		return nil, false
	}
}

func rgbBuiltin(args []any, _ map[string]any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("color.rgb expects 3 arguments")
	}

	vals := make([]int64, 3)

	for i, a := range args {
		n, ok := a.(int64)
		if !ok {
			return nil, fmt.Errorf("color.rgb arguments must be integers")
		}

		vals[i] = n
	}

	return RGB{R: vals[0], G: vals[1], B: vals[2]}, nil
}

func newBuiltin(args []any, _ map[string]any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("color.new expects 1 argument")
	}

	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("color.new argument must be a string")
	}

	if v, ok := named[name]; ok {
		return v, nil
	}

	return nil, fmt.Errorf("unknown color %q", name)
}

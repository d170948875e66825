// Package strategy implements the default `strategy` namespace:
// long/short/close append a trading-action record (position only reads) to the
// registry's shared map, so a driver or generate_outputs step can retrieve
// the emitted actions after a run. Grounded in the teacher's
// internal/types.Signal shape, generalized down to the fields a script-level
// action actually needs.
package strategy

import "github.com/JungleDome/FirScript/internal/engine"

// Action is one strategy.* call's recorded intent.
type Action struct {
	Kind   string // "long", "short", "close"
	Reason string
}

const sharedKey = "strategy.signals"

// Strategy is the default `strategy` namespace.
type Strategy struct {
	shared map[string]any
}

// New constructs a Strategy namespace backed by shared.
func New(shared map[string]any) *Strategy {
	return &Strategy{shared: shared}
}

// Attr implements engine.Namespace.
func (s *Strategy) Attr(name string) (any, bool) {
	switch name {
	case "long":
		return engine.BuiltinFunc(s.emit("long")), true
	case "short":
		return engine.BuiltinFunc(s.emit("short")), true
	case "close":
		return engine.BuiltinFunc(s.emit("close")), true
	case "position":
		return engine.BuiltinFunc(s.position), true
	default:
		return nil, false
	}
}

func (s *Strategy) emit(kind string) engine.BuiltinFunc {
	return func(args []any, _ map[string]any) (any, error) {
		reason := ""
		if len(args) > 0 {
			if r, ok := args[0].(string); ok {
				reason = r
			}
		}

		actions, _ := s.shared[sharedKey].([]Action)
		s.shared[sharedKey] = append(actions, Action{Kind: kind, Reason: reason})

		return nil, nil
	}
}

// position reports the net effect of every action emitted so far: the last
// "long"/"short" action wins unless a subsequent "close" cancels it.
func (s *Strategy) position(_ []any, _ map[string]any) (any, error) {
	actions, _ := s.shared[sharedKey].([]Action)

	pos := "flat"

	for _, a := range actions {
		switch a.Kind {
		case "long", "short":
			pos = a.Kind
		case "close":
			pos = "flat"
		}
	}

	return pos, nil
}

// GenerateOutput implements engine.OutputGenerator: every action emitted
// this run, in emission order.
func (s *Strategy) GenerateOutput() (any, bool) {
	actions, ok := s.shared[sharedKey].([]Action)
	if !ok || len(actions) == 0 {
		return nil, false
	}

	return actions, true
}

// Package chart implements the default `chart` namespace: scripts call
// chart.plot(name, value) to append a point to a named series, and the
// accumulated series is surfaced through GenerateOutput() once a run
// completes. Grounded in the teacher's marker/annotation channel
// (internal/marker), generalized from trade markers to arbitrary plotted
// series.
package chart

import "github.com/JungleDome/FirScript/internal/engine"

// PlotPoint is one chart.plot call's recorded value.
type PlotPoint struct {
	Value any
	Opts  map[string]any
}

// Chart is the default `chart` namespace.
type Chart struct {
	series map[string][]PlotPoint
}

// New constructs an empty Chart namespace.
func New() *Chart {
	return &Chart{series: map[string][]PlotPoint{}}
}

// Attr implements engine.Namespace.
func (c *Chart) Attr(name string) (any, bool) {
	if name == "plot" {
		return engine.BuiltinFunc(c.plot), true
	}

	return nil, false
}

func (c *Chart) plot(args []any, kwargs map[string]any) (any, error) {
	if len(args) < 2 {
		return nil, errPlotArgs{}
	}

	name, ok := args[0].(string)
	if !ok {
		return nil, errPlotArgs{}
	}

	c.series[name] = append(c.series[name], PlotPoint{Value: args[1], Opts: kwargs})

	return nil, nil
}

// GenerateOutput implements engine.OutputGenerator: the accumulated series,
// keyed by plot name.
func (c *Chart) GenerateOutput() (any, bool) {
	if len(c.series) == 0 {
		return nil, false
	}

	return c.series, true
}

type errPlotArgs struct{}

func (errPlotArgs) Error() string { return "chart.plot expects (name, value, **opts)" }

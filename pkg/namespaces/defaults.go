// Package namespaces wires together the default ta/input/chart/color/
// strategy/data/log namespace implementations behind a single factory
// function, for registry.Registry.RegisterDefaults to install.
package namespaces

import (
	"github.com/JungleDome/FirScript/internal/engine"
	"github.com/JungleDome/FirScript/internal/logger"
	"github.com/JungleDome/FirScript/pkg/namespaces/chart"
	"github.com/JungleDome/FirScript/pkg/namespaces/color"
	"github.com/JungleDome/FirScript/pkg/namespaces/data"
	"github.com/JungleDome/FirScript/pkg/namespaces/input"
	logns "github.com/JungleDome/FirScript/pkg/namespaces/log"
	"github.com/JungleDome/FirScript/pkg/namespaces/strategy"
	"github.com/JungleDome/FirScript/pkg/namespaces/ta"
)

// Default builds the canonical namespace set (ta, input, chart, color,
// strategy, data, log), matching registry.DefaultNamespaceFactory's shape.
// inputOverrides configures the input namespace; columnMapping configures
// the data namespace's bar rekeying.
func Default(shared map[string]any, inputOverrides map[string]any, columnMapping map[string]string) map[string]engine.Namespace {
	return map[string]engine.Namespace{
		"ta":       ta.New(shared),
		"input":    input.New(inputOverrides),
		"chart":    chart.New(),
		"color":    color.New(),
		"strategy": strategy.New(shared),
		"data":     data.New(shared, columnMapping),
		"log":      logns.New(logger.Get(), "script"),
	}
}

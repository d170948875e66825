// Package data implements the default `data` namespace: the current bar and
// historical frame a strategy/indicator script reads price data through.
// Modeled on the teacher's minimal datasource surface
// (internal/backtest/engine/engine_v1/datasource.DataSource) rather than its
// full DuckDB-backed implementation, which belongs to out-of-scope driver
// code.
package data

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JungleDome/FirScript/internal/engine"
)

// Bar is one row of the time series the driver walks.
type Bar struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

func (b Bar) toMap() map[string]any {
	return map[string]any{
		"time":   b.Time.Unix(),
		"open":   b.Open.InexactFloat64(),
		"high":   b.High.InexactFloat64(),
		"low":    b.Low.InexactFloat64(),
		"close":  b.Close.InexactFloat64(),
		"volume": b.Volume.InexactFloat64(),
	}
}

// Data is the default `data` namespace. The driver mutates it between
// process() calls via SetCurrentBar/SetAllBar; the registry's shared map
// holds the all-bars history so the `ta` namespace's lookback windows can
// read it without a direct dependency on this package.
type Data struct {
	shared        map[string]any
	columnMapping map[string]string

	current Bar
	all     []Bar
}

// New constructs a Data namespace backed by shared, the registry-owned
// cross-namespace dictionary. columnMapping, if non-nil, rekeys bar fields
// before they reach the script — ported from the original runtime's
// _transform_bar_data.
func New(shared map[string]any, columnMapping map[string]string) *Data {
	return &Data{shared: shared, columnMapping: columnMapping}
}

// SetCurrentBar records the bar the next process() call should see, and
// publishes it into shared so other namespaces (ta) can reach it.
func (d *Data) SetCurrentBar(bar Bar) {
	d.current = bar
	d.shared["data.current"] = bar
}

// SetAllBar records the historical frame up to and including the current
// bar. Index len-1 is expected to be the current bar.
func (d *Data) SetAllBar(bars []Bar) {
	d.all = bars
	d.shared["data.all"] = bars
}

// History returns the historical frame as currently set, for use by other
// namespaces (ta's lookback windows) that share this registry's shared map.
func (d *Data) History() []Bar { return d.all }

func (d *Data) remapKey(name string) string {
	if d.columnMapping != nil {
		if mapped, ok := d.columnMapping[name]; ok {
			return mapped
		}
	}

	return name
}

// Attr implements engine.Namespace. `current` and `all` are exposed as
// dot-accessible maps; set_current_bar/set_all_bar let script code (as
// opposed to the driver) mutate state too, accepting dicts shaped like
// Bar's fields.
func (d *Data) Attr(name string) (any, bool) {
	switch name {
	case "current":
		return engine.DotMap(d.remappedMap(d.current)), true
	case "all":
		out := make([]any, len(d.all))
		for i, b := range d.all {
			out[i] = engine.DotMap(d.remappedMap(b))
		}

		return out, true
	case "set_current_bar":
		return engine.BuiltinFunc(d.builtinSetCurrentBar), true
	case "set_all_bar":
		return engine.BuiltinFunc(d.builtinSetAllBar), true
	default:
		return nil, false
	}
}

func (d *Data) remappedMap(b Bar) map[string]any {
	raw := b.toMap()

	if d.columnMapping == nil {
		return raw
	}

	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[d.remapKey(k)] = v
	}

	return out
}

func (d *Data) builtinSetCurrentBar(args []any, _ map[string]any) (any, error) {
	if len(args) != 1 {
		return nil, errMissingBar("set_current_bar")
	}

	bar, err := barFromValue(args[0])
	if err != nil {
		return nil, err
	}

	d.SetCurrentBar(bar)

	return nil, nil
}

func (d *Data) builtinSetAllBar(args []any, _ map[string]any) (any, error) {
	if len(args) != 1 {
		return nil, errMissingBar("set_all_bar")
	}

	list, ok := args[0].([]any)
	if !ok {
		return nil, errMissingBar("set_all_bar")
	}

	bars := make([]Bar, len(list))

	for i, item := range list {
		bar, err := barFromValue(item)
		if err != nil {
			return nil, err
		}

		bars[i] = bar
	}

	d.SetAllBar(bars)

	return nil, nil
}

func barFromValue(v any) (Bar, error) {
	m, ok := v.(map[string]any)
	if !ok {
		if dm, ok := v.(engine.DotMap); ok {
			m = map[string]any(dm)
		} else {
			return Bar{}, errMissingBar("bar")
		}
	}

	return Bar{
		Open:   toDecimal(m["open"]),
		High:   toDecimal(m["high"]),
		Low:    toDecimal(m["low"]),
		Close:  toDecimal(m["close"]),
		Volume: toDecimal(m["volume"]),
	}, nil
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	default:
		return decimal.Zero
	}
}

type barError struct{ op string }

func (e *barError) Error() string { return e.op + " expects a single bar-shaped dict argument" }

func errMissingBar(op string) error { return &barError{op: op} }

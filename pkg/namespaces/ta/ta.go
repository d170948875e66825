// Package ta implements the default `ta` namespace: sma/ema/rsi lookback
// indicators over the bar history the `data` namespace publishes into the
// registry's shared map. The sliding-window algorithms are ported from the
// teacher's internal/indicator/{ma,ema,rsi}.go (since removed in favor of
// this namespace-scoped, decimal-precision rewrite); the indicator-caching
// and signal-emitting machinery those files also had is out of scope here
// per spec.md's Non-goals.
package ta

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JungleDome/FirScript/internal/engine"
	"github.com/JungleDome/FirScript/pkg/namespaces/data"
)

// TA is the default `ta` namespace. It reads bar history lazily from shared
// on every call, so it always sees whatever the `data` namespace most
// recently published — no caching across process() invocations.
type TA struct {
	shared map[string]any
}

// New constructs a TA namespace sharing shared with the data namespace that
// publishes bar history into it.
func New(shared map[string]any) *TA {
	return &TA{shared: shared}
}

func (t *TA) history() []data.Bar {
	bars, _ := t.shared["data.all"].([]data.Bar)

	return bars
}

// Attr implements engine.Namespace.
func (t *TA) Attr(name string) (any, bool) {
	switch name {
	case "sma":
		return engine.BuiltinFunc(t.sma), true
	case "ema":
		return engine.BuiltinFunc(t.ema), true
	case "rsi":
		return engine.BuiltinFunc(t.rsi), true
	default:
		return nil, false
	}
}

func periodArg(args []any) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a single period argument")
	}

	n, ok := args[0].(int64)
	if !ok {
		return 0, fmt.Errorf("period argument must be an integer")
	}

	return int(n), nil
}

// window returns the last period closes from bars, oldest first, or an
// error if there is not enough history yet.
func (t *TA) window(period int) ([]decimal.Decimal, error) {
	bars := t.history()
	if len(bars) < period {
		return nil, fmt.Errorf("not enough history: have %d bars, need %d", len(bars), period)
	}

	out := make([]decimal.Decimal, period)
	for i, b := range bars[len(bars)-period:] {
		out[i] = b.Close
	}

	return out, nil
}

// sma(period) -> the simple moving average of the last `period` closes.
// Ported from ma.go's calculateSimpleMovingAverage.
func (t *TA) sma(args []any, _ map[string]any) (any, error) {
	period, err := periodArg(args)
	if err != nil {
		return nil, err
	}

	closes, err := t.window(period)
	if err != nil {
		return nil, err
	}

	return simpleMovingAverage(closes), nil
}

func simpleMovingAverage(closes []decimal.Decimal) float64 {
	sum := decimal.Zero
	for _, c := range closes {
		sum = sum.Add(c)
	}

	avg := sum.Div(decimal.NewFromInt(int64(len(closes))))

	f, _ := avg.Float64()

	return f
}

// ema(period) -> the exponential moving average of the last `period` closes,
// seeded with the SMA of the first value per ema.go's convention.
func (t *TA) ema(args []any, _ map[string]any) (any, error) {
	period, err := periodArg(args)
	if err != nil {
		return nil, err
	}

	closes, err := t.window(period)
	if err != nil {
		return nil, err
	}

	return exponentialMovingAverage(closes, period), nil
}

func exponentialMovingAverage(closes []decimal.Decimal, period int) float64 {
	if len(closes) == 0 {
		return 0
	}

	multiplier := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(period + 1)))

	ema := closes[0]

	for _, c := range closes[1:] {
		ema = c.Sub(ema).Mul(multiplier).Add(ema)
	}

	f, _ := ema.Float64()

	return f
}

// rsi(period) -> the relative strength index over the last `period+1`
// closes (period price changes), ported from rsi.go's average gain/loss
// sliding window.
func (t *TA) rsi(args []any, _ map[string]any) (any, error) {
	period, err := periodArg(args)
	if err != nil {
		return nil, err
	}

	closes, err := t.window(period + 1)
	if err != nil {
		return nil, err
	}

	return relativeStrengthIndex(closes), nil
}

func relativeStrengthIndex(closes []decimal.Decimal) float64 {
	gain, loss := decimal.Zero, decimal.Zero

	for i := 1; i < len(closes); i++ {
		delta := closes[i].Sub(closes[i-1])
		if delta.IsPositive() {
			gain = gain.Add(delta)
		} else {
			loss = loss.Add(delta.Neg())
		}
	}

	n := decimal.NewFromInt(int64(len(closes) - 1))
	avgGain := gain.Div(n)
	avgLoss := loss.Div(n)

	if avgLoss.IsZero() {
		return 100
	}

	rs := avgGain.Div(avgLoss)
	rsi := decimal.NewFromInt(100).Sub(decimal.NewFromInt(100).Div(decimal.NewFromInt(1).Add(rs)))

	f, _ := rsi.Float64()

	return f
}

package ta

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/JungleDome/FirScript/pkg/namespaces/data"
)

type TATestSuite struct {
	suite.Suite
}

func TestTASuite(t *testing.T) {
	suite.Run(t, new(TATestSuite))
}

func barsWithCloses(values ...float64) []data.Bar {
	out := make([]data.Bar, len(values))
	for i, v := range values {
		out[i] = data.Bar{Close: decimal.NewFromFloat(v)}
	}

	return out
}

func closesOf(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}

	return out
}

func (suite *TATestSuite) TestSimpleMovingAverage() {
	avg := simpleMovingAverage(closesOf(1, 2, 3, 4, 5))
	suite.InDelta(3.0, avg, 1e-9)
}

func (suite *TATestSuite) TestExponentialMovingAverage() {
	ema := exponentialMovingAverage(closesOf(1, 2, 3), 3)
	suite.InDelta(2.25, ema, 1e-9)
}

func (suite *TATestSuite) TestRelativeStrengthIndexAllGains() {
	rsi := relativeStrengthIndex(closesOf(1, 2, 3))
	suite.InDelta(100.0, rsi, 1e-9)
}

func (suite *TATestSuite) TestRelativeStrengthIndexBalanced() {
	rsi := relativeStrengthIndex(closesOf(1, 2, 1))
	suite.InDelta(50.0, rsi, 1e-9)
}

func (suite *TATestSuite) TestSmaInsufficientHistoryErrors() {
	tan := New(map[string]any{})

	_, err := tan.sma([]any{int64(5)}, nil)
	suite.Require().Error(err)
}

func (suite *TATestSuite) TestSmaReadsHistoryFromShared() {
	shared := map[string]any{}
	tan := New(shared)

	shared["data.all"] = barsWithCloses(1, 2, 3, 4, 5)

	out, err := tan.sma([]any{int64(5)}, nil)
	suite.Require().NoError(err)
	suite.InDelta(3.0, out.(float64), 1e-9)
}

func (suite *TATestSuite) TestPeriodArgRejectsWrongArity() {
	_, err := periodArg([]any{int64(1), int64(2)})
	suite.Require().Error(err)

	_, err = periodArg([]any{"not-an-int"})
	suite.Require().Error(err)
}

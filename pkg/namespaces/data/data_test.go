package data

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/JungleDome/FirScript/internal/engine"
)

type DataTestSuite struct {
	suite.Suite
}

func TestDataSuite(t *testing.T) {
	suite.Run(t, new(DataTestSuite))
}

func (suite *DataTestSuite) sampleBar() Bar {
	return Bar{
		Time:   time.Unix(1000, 0),
		Open:   decimal.NewFromFloat(1),
		High:   decimal.NewFromFloat(2),
		Low:    decimal.NewFromFloat(0.5),
		Close:  decimal.NewFromFloat(1.5),
		Volume: decimal.NewFromFloat(100),
	}
}

func (suite *DataTestSuite) TestSetCurrentBarPublishesToShared() {
	shared := map[string]any{}
	d := New(shared, nil)

	d.SetCurrentBar(suite.sampleBar())

	published, ok := shared["data.current"].(Bar)
	suite.Require().True(ok)
	suite.True(published.Close.Equal(decimal.NewFromFloat(1.5)))
}

func (suite *DataTestSuite) TestSetAllBarPublishesHistoryAndHistoryAccessor() {
	shared := map[string]any{}
	d := New(shared, nil)
	bars := []Bar{suite.sampleBar(), suite.sampleBar()}

	d.SetAllBar(bars)

	suite.Len(d.History(), 2)

	published, ok := shared["data.all"].([]Bar)
	suite.Require().True(ok)
	suite.Len(published, 2)
}

func (suite *DataTestSuite) TestAttrCurrentReturnsDotMap() {
	d := New(map[string]any{}, nil)
	d.SetCurrentBar(suite.sampleBar())

	v, ok := d.Attr("current")
	suite.Require().True(ok)

	dm, ok := v.(engine.DotMap)
	suite.Require().True(ok)
	suite.InDelta(1.5, dm["close"].(float64), 1e-9)
}

func (suite *DataTestSuite) TestColumnMappingRekeysBarFields() {
	d := New(map[string]any{}, map[string]string{"close": "c"})
	d.SetCurrentBar(suite.sampleBar())

	v, _ := d.Attr("current")
	dm := v.(engine.DotMap)

	_, hasOriginal := dm["close"]
	suite.False(hasOriginal)
	suite.InDelta(1.5, dm["c"].(float64), 1e-9)
}

func (suite *DataTestSuite) TestSetCurrentBarBuiltinAcceptsDotMap() {
	d := New(map[string]any{}, nil)

	_, err := d.builtinSetCurrentBar([]any{engine.DotMap{
		"open": 1.0, "high": 2.0, "low": 0.5, "close": 1.5, "volume": 100.0,
	}}, nil)
	suite.Require().NoError(err)
	suite.True(d.current.Close.Equal(decimal.NewFromFloat(1.5)))
}

func (suite *DataTestSuite) TestSetCurrentBarBuiltinRejectsWrongArity() {
	d := New(map[string]any{}, nil)

	_, err := d.builtinSetCurrentBar([]any{}, nil)
	suite.Require().Error(err)
}

func (suite *DataTestSuite) TestSetAllBarBuiltinAcceptsListOfDicts() {
	d := New(map[string]any{}, nil)

	_, err := d.builtinSetAllBar([]any{[]any{
		map[string]any{"open": 1.0, "high": 2.0, "low": 0.5, "close": 1.5, "volume": 100.0},
	}}, nil)
	suite.Require().NoError(err)
	suite.Len(d.History(), 1)
}

package color

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ColorTestSuite struct {
	suite.Suite
}

func TestColorSuite(t *testing.T) {
	suite.Run(t, new(ColorTestSuite))
}

func (suite *ColorTestSuite) TestNamedConstantLookup() {
	c := New()

	v, ok := c.Attr("red")
	suite.Require().True(ok)
	suite.Equal(RGB{255, 0, 0}, v)
}

func (suite *ColorTestSuite) TestUnknownNameReturnsFalse() {
	c := New()

	_, ok := c.Attr("chartreuse")
	suite.False(ok)
}

func (suite *ColorTestSuite) TestRGBBuiltinConstructsValue() {
	v, err := rgbBuiltin([]any{int64(10), int64(20), int64(30)}, nil)
	suite.Require().NoError(err)
	suite.Equal(RGB{10, 20, 30}, v)
}

func (suite *ColorTestSuite) TestRGBBuiltinRejectsWrongArity() {
	_, err := rgbBuiltin([]any{int64(1)}, nil)
	suite.Require().Error(err)
}

func (suite *ColorTestSuite) TestNewBuiltinResolvesNamedColor() {
	v, err := newBuiltin([]any{"blue"}, nil)
	suite.Require().NoError(err)
	suite.Equal(named["blue"], v)
}

func (suite *ColorTestSuite) TestNewBuiltinRejectsUnknownName() {
	_, err := newBuiltin([]any{"nope"}, nil)
	suite.Require().Error(err)
}

func (suite *ColorTestSuite) TestStringFormatsAsRGBTuple() {
	suite.Equal("rgb(1,2,3)", RGB{1, 2, 3}.String())
}

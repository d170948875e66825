package input

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/JungleDome/FirScript/internal/engine"
)

type InputTestSuite struct {
	suite.Suite
}

func TestInputSuite(t *testing.T) {
	suite.Run(t, new(InputTestSuite))
}

func (suite *InputTestSuite) builtin(in *Input, name string) engine.BuiltinFunc {
	v, ok := in.Attr(name)
	suite.Require().True(ok)

	fn, ok := v.(engine.BuiltinFunc)
	suite.Require().True(ok)

	return fn
}

func (suite *InputTestSuite) TestIntReturnsDefaultWhenNoOverride() {
	in := New(nil)

	v, err := suite.builtin(in, "int")([]any{"length", int64(10)}, nil)
	suite.Require().NoError(err)
	suite.Equal(int64(10), v)
}

func (suite *InputTestSuite) TestIntOverrideSupersedesDefault() {
	in := New(map[string]any{"length": int64(20)})

	v, err := suite.builtin(in, "int")([]any{"length", int64(10)}, nil)
	suite.Require().NoError(err)
	suite.Equal(int64(20), v)

	v, err = suite.builtin(in, "int")([]any{"other", int64(10)}, nil)
	suite.Require().NoError(err)
	suite.Equal(int64(10), v)
}

func (suite *InputTestSuite) TestStringRejectsMissingArgs() {
	in := New(nil)

	_, err := suite.builtin(in, "string")(nil, nil)
	suite.Require().Error(err)
}

func (suite *InputTestSuite) TestUnknownAttrReturnsFalse() {
	in := New(nil)

	_, ok := in.Attr("nope")
	suite.False(ok)
}

func (suite *InputTestSuite) TestDeclaredRecordedAndSchemaGenerated() {
	in := New(nil)

	_, err := suite.builtin(in, "bool")([]any{"enabled", true}, nil)
	suite.Require().NoError(err)

	schema, err := in.Schema()
	suite.Require().NoError(err)
	suite.NotEmpty(schema)

	meta, ok := in.GenerateMetadata()
	suite.Require().True(ok)
	declared := meta.([]Declared)
	suite.Require().Len(declared, 1)
	suite.Equal("enabled", declared[0].Name)
	suite.Equal("bool", declared[0].Type)
}

func (suite *InputTestSuite) TestGenerateMetadataEmptyWhenNothingDeclared() {
	in := New(nil)

	_, ok := in.GenerateMetadata()
	suite.False(ok)
}

package lang

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ParserTestSuite struct {
	suite.Suite
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserTestSuite))
}

func (suite *ParserTestSuite) TestParsesAssignment() {
	prog, err := Parse("x = 1 + 2\n")
	suite.Require().NoError(err)
	suite.Require().Len(prog.Body, 1)

	assign, ok := prog.Body[0].(*Assign)
	suite.Require().True(ok)

	name, ok := assign.Target.(*Name)
	suite.Require().True(ok)
	suite.Equal("x", name.Ident)

	bin, ok := assign.Value.(*BinOp)
	suite.Require().True(ok)
	suite.Equal(PLUS, bin.Op)
}

func (suite *ParserTestSuite) TestParsesFunctionDef() {
	src := "def setup():\n    length = input.int(\"length\", 14)\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)
	suite.Require().Len(prog.Body, 1)

	fn, ok := prog.Body[0].(*FunctionDef)
	suite.Require().True(ok)
	suite.Equal("setup", fn.Name)
	suite.Empty(fn.Params)
	suite.Require().Len(fn.Body, 1)

	assign, ok := fn.Body[0].(*Assign)
	suite.Require().True(ok)

	call, ok := assign.Value.(*Call)
	suite.Require().True(ok)

	attr, ok := call.Func.(*Attribute)
	suite.Require().True(ok)
	suite.Equal("int", attr.Attr)

	inputName, ok := attr.Value.(*Name)
	suite.Require().True(ok)
	suite.Equal("input", inputName.Ident)
	suite.Require().Len(call.Args, 2)
}

func (suite *ParserTestSuite) TestParsesIfElifElse() {
	src := "def process():\n" +
		"    if close > open:\n" +
		"        strategy.entry(\"long\")\n" +
		"    elif close < open:\n" +
		"        strategy.entry(\"short\")\n" +
		"    else:\n" +
		"        strategy.close(\"long\")\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	fn := prog.Body[0].(*FunctionDef)
	ifNode, ok := fn.Body[0].(*If)
	suite.Require().True(ok)
	suite.Require().Len(ifNode.Orelse, 1)

	elifNode, ok := ifNode.Orelse[0].(*If)
	suite.Require().True(ok)
	suite.Require().Len(elifNode.Orelse, 1)

	_, ok = elifNode.Orelse[0].(*ExprStmt)
	suite.Require().True(ok)
}

func (suite *ParserTestSuite) TestParsesForLoop() {
	src := "total = 0\nfor v in values:\n    total = total + v\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)
	suite.Require().Len(prog.Body, 2)

	forNode, ok := prog.Body[1].(*For)
	suite.Require().True(ok)
	suite.Equal("v", forNode.Target)
	suite.Require().Len(forNode.Body, 1)
}

func (suite *ParserTestSuite) TestParsesGlobalStatement() {
	src := "def setup():\n    global length\n    length = 14\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	fn := prog.Body[0].(*FunctionDef)
	g, ok := fn.Body[0].(*Global)
	suite.Require().True(ok)
	suite.Equal([]string{"length"}, g.Names)
}

func (suite *ParserTestSuite) TestParsesKeywordArgsAndDict() {
	src := `plot(close, color=color.blue, opts={"width": 2})` + "\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	exprStmt := prog.Body[0].(*ExprStmt)
	call := exprStmt.X.(*Call)
	suite.Require().Len(call.Args, 1)
	suite.Require().Len(call.KwNames, 2)
	suite.Equal([]string{"color", "opts"}, call.KwNames)

	dict, ok := call.KwValues[1].(*DictLit)
	suite.Require().True(ok)
	suite.Require().Len(dict.Keys, 1)
}

func (suite *ParserTestSuite) TestParsesLambdaAndList() {
	src := "mapped = map(lambda x: x * 2, [1, 2, 3])\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	assign := prog.Body[0].(*Assign)
	call := assign.Value.(*Call)
	suite.Require().Len(call.Args, 2)

	lambda, ok := call.Args[0].(*Lambda)
	suite.Require().True(ok)
	suite.Equal([]string{"x"}, lambda.Params)

	list, ok := call.Args[1].(*ListLit)
	suite.Require().True(ok)
	suite.Require().Len(list.Elts, 3)
}

func (suite *ParserTestSuite) TestParsesChainedComparisonAndBoolOp() {
	src := "ok = 0 < x and x <= 10\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	assign := prog.Body[0].(*Assign)
	boolOp, ok := assign.Value.(*BoolOp)
	suite.Require().True(ok)
	suite.Equal(AND, boolOp.Op)
	suite.Require().Len(boolOp.Values, 2)

	_, ok = boolOp.Values[0].(*Compare)
	suite.Require().True(ok)
}

func (suite *ParserTestSuite) TestParsesSubscriptAndAttributeChain() {
	src := "v = data.bars[0].close\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	assign := prog.Body[0].(*Assign)
	attr, ok := assign.Value.(*Attribute)
	suite.Require().True(ok)
	suite.Equal("close", attr.Attr)

	sub, ok := attr.Value.(*Subscript)
	suite.Require().True(ok)

	inner, ok := sub.Value.(*Attribute)
	suite.Require().True(ok)
	suite.Equal("bars", inner.Attr)
}

func (suite *ParserTestSuite) TestReturnWithoutValue() {
	src := "def f():\n    return\n"
	prog, err := Parse(src)
	suite.Require().NoError(err)

	fn := prog.Body[0].(*FunctionDef)
	ret, ok := fn.Body[0].(*Return)
	suite.Require().True(ok)
	suite.Nil(ret.Value)
}

func (suite *ParserTestSuite) TestSyntaxErrorReportsLocation() {
	_, err := Parse("def f(:\n    return 1\n")
	suite.Require().Error(err)

	var perr *ParseError
	suite.Require().ErrorAs(err, &perr)
	suite.Equal(1, perr.Line)
}

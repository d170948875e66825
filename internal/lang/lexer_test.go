package lang

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type LexerTestSuite struct {
	suite.Suite
}

func TestLexerSuite(t *testing.T) {
	suite.Run(t, new(LexerTestSuite))
}

func (suite *LexerTestSuite) types(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}

	return types
}

func (suite *LexerTestSuite) TestSimpleAssignment() {
	toks, err := Tokenize("x = 1\n")
	suite.Require().NoError(err)
	suite.Equal([]TokenType{IDENT, ASSIGN, INT, NEWLINE, EOF}, suite.types(toks))
}

func (suite *LexerTestSuite) TestIndentAndDedent() {
	src := "def f(x):\n    return x\ny = 1\n"
	toks, err := Tokenize(src)
	suite.Require().NoError(err)
	suite.Equal([]TokenType{
		DEF, IDENT, LPAREN, IDENT, RPAREN, COLON, NEWLINE,
		INDENT, RETURN, IDENT, NEWLINE,
		DEDENT, IDENT, ASSIGN, INT, NEWLINE, EOF,
	}, suite.types(toks))
}

func (suite *LexerTestSuite) TestNestedDedentEmitsOneTokenPerLevel() {
	src := "if a:\n    if b:\n        x = 1\nz = 2\n"
	toks, err := Tokenize(src)
	suite.Require().NoError(err)

	var dedents int
	for _, tok := range toks {
		if tok.Type == DEDENT {
			dedents++
		}
	}

	suite.Equal(2, dedents)
}

func (suite *LexerTestSuite) TestBlankAndCommentLinesIgnored() {
	src := "x = 1\n\n# a comment\ny = 2\n"
	toks, err := Tokenize(src)
	suite.Require().NoError(err)
	suite.Equal([]TokenType{IDENT, ASSIGN, INT, NEWLINE, IDENT, ASSIGN, INT, NEWLINE, EOF}, suite.types(toks))
}

func (suite *LexerTestSuite) TestBracketsSuppressNewlines() {
	src := "x = [\n    1,\n    2,\n]\n"
	toks, err := Tokenize(src)
	suite.Require().NoError(err)
	suite.Equal([]TokenType{
		IDENT, ASSIGN, LBRACKET, INT, COMMA, INT, COMMA, RBRACKET, NEWLINE, EOF,
	}, suite.types(toks))
}

func (suite *LexerTestSuite) TestStringEscapes() {
	toks, err := Tokenize(`s = "a\nb"` + "\n")
	suite.Require().NoError(err)
	suite.Equal("a\nb", toks[2].Literal)
}

func (suite *LexerTestSuite) TestFloatLiteral() {
	toks, err := Tokenize("x = 1.5\n")
	suite.Require().NoError(err)
	suite.Equal(FLOAT, toks[2].Type)
	suite.Equal("1.5", toks[2].Literal)
}

func (suite *LexerTestSuite) TestKeywordsClassified() {
	toks, err := Tokenize("if x and not y:\n    pass\n")
	suite.Require().NoError(err)
	suite.Equal(IF, toks[0].Type)
	suite.Equal(AND, toks[2].Type)
	suite.Equal(NOT, toks[3].Type)
}

func (suite *LexerTestSuite) TestTabIndentationRejected() {
	_, err := Tokenize("if x:\n\treturn 1\n")
	suite.Require().Error(err)
}

func (suite *LexerTestSuite) TestUnterminatedStringRejected() {
	_, err := Tokenize(`x = "unterminated` + "\n")
	suite.Require().Error(err)
}

func (suite *LexerTestSuite) TestMismatchedDedentRejected() {
	src := "if a:\n    x = 1\n  y = 2\n"
	_, err := Tokenize(src)
	suite.Require().Error(err)
}

func (suite *LexerTestSuite) TestTwoCharOperators() {
	toks, err := Tokenize("a == b != c <= d >= e // f ** g\n")
	suite.Require().NoError(err)
	suite.Equal([]TokenType{
		IDENT, EQ, IDENT, NEQ, IDENT, LE, IDENT, GE, IDENT, DSLASH, IDENT, DSTAR, IDENT, NEWLINE, EOF,
	}, suite.types(toks))
}

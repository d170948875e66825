package log

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JungleDome/FirScript/internal/engine"
)

type LogTestSuite struct {
	suite.Suite
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) newObserved() (*Log, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return New(zap.New(core), "my_strategy"), recorded
}

func (suite *LogTestSuite) builtin(l *Log, name string) engine.BuiltinFunc {
	v, ok := l.Attr(name)
	suite.Require().True(ok)

	fn, ok := v.(engine.BuiltinFunc)
	suite.Require().True(ok)

	return fn
}

func (suite *LogTestSuite) TestInfoForwardsMessageAndSourceField() {
	l, recorded := suite.newObserved()

	_, err := suite.builtin(l, "info")([]any{"hello"}, map[string]any{"bar": int64(1)})
	suite.Require().NoError(err)

	suite.Require().Equal(1, recorded.Len())
	entry := recorded.All()[0]
	suite.Equal(zapcore.InfoLevel, entry.Level)
	suite.Equal("hello", entry.Message)
	suite.Equal("my_strategy", entry.ContextMap()["source"])
	suite.EqualValues(1, entry.ContextMap()["bar"])
}

func (suite *LogTestSuite) TestWarnAndErrorUseDistinctLevels() {
	l, recorded := suite.newObserved()

	_, err := suite.builtin(l, "warn")([]any{"careful"}, nil)
	suite.Require().NoError(err)

	_, err = suite.builtin(l, "error")([]any{"broken"}, nil)
	suite.Require().NoError(err)

	all := recorded.All()
	suite.Require().Len(all, 2)
	suite.Equal(zapcore.WarnLevel, all[0].Level)
	suite.Equal(zapcore.ErrorLevel, all[1].Level)
}

func (suite *LogTestSuite) TestDebugWithNoMessageArgLogsEmptyMessage() {
	l, recorded := suite.newObserved()

	_, err := suite.builtin(l, "debug")(nil, nil)
	suite.Require().NoError(err)

	suite.Require().Equal(1, recorded.Len())
	suite.Equal("", recorded.All()[0].Message)
}

func (suite *LogTestSuite) TestUnknownAttrReturnsFalse() {
	l, _ := suite.newObserved()

	_, ok := l.Attr("trace")
	suite.False(ok)
}

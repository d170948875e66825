package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeScriptNotFound, "script not found")
	suite.NotNil(err)
	suite.Equal(ErrCodeScriptNotFound, err.Code)
	suite.Equal("script not found", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeScriptNotFound, "script %q not found", "util")
	suite.NotNil(err)
	suite.Equal(ErrCodeScriptNotFound, err.Code)
	suite.Equal(`script "util" not found`, err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeCompilation, "failed to compile", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeCompilation, err.Code)
	suite.Equal("failed to compile", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeCompilation, cause, "failed to compile %s", "main")
	suite.NotNil(err)
	suite.Equal(ErrCodeCompilation, err.Code)
	suite.Equal("failed to compile main", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeScriptNotFound, "script not found")
	suite.Equal("[202] script not found", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeCompilation, "failed to compile", cause)
	suite.Equal("[200] failed to compile: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeCompilation, "failed to compile", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeScriptNotFound, "script not found")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeScriptNotFound, "script not found")
	suite.Equal(ErrCodeScriptNotFound, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeScriptNotFound, "script not found")
	err := Wrap(ErrCodeEntrypointMissing, "cannot build main script", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeEntrypointMissing, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromNonFirScriptError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeScriptNotFound, "script not found")
	suite.True(HasCode(err, ErrCodeScriptNotFound))
	suite.False(HasCode(err, ErrCodeCompilation))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeCompilation, "failed to compile", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeScriptNotFound, "script not found")
	var typed *Error
	suite.True(As(err, &typed))
	suite.Equal(ErrCodeScriptNotFound, typed.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeParseSyntax)
	suite.Equal(ErrorCode(200), ErrCodeCompilation)
	suite.Equal(ErrorCode(300), ErrCodeNamespaceNotFound)
	suite.Equal(ErrorCode(400), ErrCodeInvalidConfiguration)
}

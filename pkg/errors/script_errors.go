package errors

import "fmt"

// ScriptEngineError is the root type every error raised by the parser,
// validator, execution context, or importer satisfies.
type ScriptEngineError interface {
	error
	// Code returns the structured ErrorCode of the underlying error.
	Code() ErrorCode
}

// base carries the fields common to every parse-time error: the id of the
// source the error came from, and the line/column of the offending node.
// Line and Col are zero when the originating node could not be located.
type base struct {
	inner  *Error
	Source string
	Line   int
	Col    int
}

func (b *base) Code() ErrorCode { return b.inner.Code }
func (b *base) Unwrap() error   { return b.inner }

func (b *base) Error() string {
	if b.Source == "" && b.Line == 0 {
		return b.inner.Error()
	}

	return fmt.Sprintf("%s:%d:%d: %s", b.Source, b.Line, b.Col, b.inner.Message)
}

func newBase(code ErrorCode, source string, line, col int, message string) base {
	return base{inner: New(code, message), Source: source, Line: line, Col: col}
}

// ParseError is raised when the source fails to tokenize or parse.
type ParseError struct{ base }

func NewParseError(source string, line, col int, message string) *ParseError {
	return &ParseError{newBase(ErrCodeParseSyntax, source, line, col, message)}
}

// MissingKindError is raised when a script satisfies none of the
// strategy/indicator/library classification predicates.
type MissingKindError struct{ base }

func NewMissingKindError(source string, line, col int, message string) *MissingKindError {
	return &MissingKindError{newBase(ErrCodeMissingKind, source, line, col, message)}
}

// ConflictingKindError is raised when a script partially satisfies more than
// one classification predicate (e.g. has process but no setup).
type ConflictingKindError struct{ base }

func NewConflictingKindError(source string, line, col int, message string) *ConflictingKindError {
	return &ConflictingKindError{newBase(ErrCodeConflictingKind, source, line, col, message)}
}

// MissingRequiredFunctionsError is raised when a strategy/indicator script
// lacks setup() and/or process() at top level.
type MissingRequiredFunctionsError struct{ base }

func NewMissingRequiredFunctionsError(source string, line, col int, message string) *MissingRequiredFunctionsError {
	return &MissingRequiredFunctionsError{newBase(ErrCodeMissingRequiredFunctions, source, line, col, message)}
}

// NoExportsError is raised when a library has zero top-level export assignments.
type NoExportsError struct{ base }

func NewNoExportsError(source string, line, col int, message string) *NoExportsError {
	return &NoExportsError{newBase(ErrCodeNoExports, source, line, col, message)}
}

// MultipleExportsError is raised when a library assigns export more than once.
type MultipleExportsError struct{ base }

func NewMultipleExportsError(source string, line, col int, message string) *MultipleExportsError {
	return &MultipleExportsError{newBase(ErrCodeMultipleExports, source, line, col, message)}
}

// InvalidInputUsageError is raised when input.* is called outside setup().
type InvalidInputUsageError struct{ base }

func NewInvalidInputUsageError(source string, line, col int, message string) *InvalidInputUsageError {
	return &InvalidInputUsageError{newBase(ErrCodeInvalidInputUsage, source, line, col, message)}
}

// StrategyGlobalVariableError is raised when a strategy/indicator script
// assigns a plain variable at top level (outside def/export/import_script),
// and when a script validated as a library defines setup or process.
type StrategyGlobalVariableError struct{ base }

func NewStrategyGlobalVariableError(source string, line, col int, message string) *StrategyGlobalVariableError {
	return &StrategyGlobalVariableError{newBase(ErrCodeStrategyGlobalVariable, source, line, col, message)}
}

// StrategyFunctionInIndicatorError is raised when an indicator or library
// references strategy.* anywhere in its body.
type StrategyFunctionInIndicatorError struct{ base }

func NewStrategyFunctionInIndicatorError(source string, line, col int, message string) *StrategyFunctionInIndicatorError {
	return &StrategyFunctionInIndicatorError{newBase(ErrCodeStrategyFunctionInIndicator, source, line, col, message)}
}

// ReservedVariableNameError is raised when a name matching __<...>__ is used
// as an export target or top-level binding.
type ReservedVariableNameError struct{ base }

func NewReservedVariableNameError(source string, line, col int, message string) *ReservedVariableNameError {
	return &ReservedVariableNameError{newBase(ErrCodeReservedVariableName, source, line, col, message)}
}

// runtimeBase carries the fields common to every runtime error: the source
// id, the display name under which the failing code ran, the line number
// and text of the offending source line, and the inner host-level message.
type runtimeBase struct {
	inner        *Error
	Source       string
	Name         string
	LineNo       int
	LineStr      string
	ColNo        int
	InnerMessage string
}

func (b *runtimeBase) Code() ErrorCode { return b.inner.Code }
func (b *runtimeBase) Unwrap() error   { return b.inner }

func (b *runtimeBase) Error() string {
	if b.LineNo == 0 {
		return b.inner.Error()
	}

	return fmt.Sprintf("%s: %s (line %d: %q)", b.Name, b.inner.Message, b.LineNo, b.LineStr)
}

func newRuntimeBase(code ErrorCode, source, name string, lineNo int, lineStr string, colNo int, innerMessage string) runtimeBase {
	message := innerMessage
	if message == "" {
		message = name
	}

	return runtimeBase{
		inner:        New(code, message),
		Source:       source,
		Name:         name,
		LineNo:       lineNo,
		LineStr:      lineStr,
		ColNo:        colNo,
		InnerMessage: innerMessage,
	}
}

// CompilationError is raised when compiling a script's source fails.
type CompilationError struct{ runtimeBase }

func NewCompilationError(source, name string, lineNo int, lineStr string, colNo int, innerMessage string) *CompilationError {
	return &CompilationError{newRuntimeBase(ErrCodeCompilation, source, name, lineNo, lineStr, colNo, innerMessage)}
}

// ScriptRuntimeError is raised when executing compiled script code panics or
// returns a host-level error (top-level exec, setup(), process(), or an
// imported script's own top-level exec).
type ScriptRuntimeError struct{ runtimeBase }

func NewScriptRuntimeError(source, name string, lineNo int, lineStr string, colNo int, innerMessage string) *ScriptRuntimeError {
	return &ScriptRuntimeError{newRuntimeBase(ErrCodeScriptRuntime, source, name, lineNo, lineStr, colNo, innerMessage)}
}

// NotAllowedError is raised when a script invokes a deny-listed builtin.
type NotAllowedError struct{ runtimeBase }

func NewNotAllowedError(source, name string, lineNo int, lineStr string, colNo int, innerMessage string) *NotAllowedError {
	return &NotAllowedError{newRuntimeBase(ErrCodeNotAllowed, source, name, lineNo, lineStr, colNo, innerMessage)}
}

// ScriptNotFoundError is raised when the importer cannot find a registered
// script by name.
type ScriptNotFoundError struct{ runtimeBase }

func NewScriptNotFoundError(name string) *ScriptNotFoundError {
	return &ScriptNotFoundError{newRuntimeBase(ErrCodeScriptNotFound, "", name, 0, "", 0, fmt.Sprintf("script %q not found", name))}
}

// EntrypointNotFoundError is raised when BuildMainScript is called before a
// main script has been designated.
type EntrypointNotFoundError struct{ runtimeBase }

func NewEntrypointNotFoundError() *EntrypointNotFoundError {
	return &EntrypointNotFoundError{newRuntimeBase(ErrCodeEntrypointMissing, "", "", 0, "", 0, "no main script has been designated")}
}

// CircularImportError is raised, at runtime, when import_script resolves a
// name that is already on the import stack.
type CircularImportError struct {
	runtimeBase
	Importer string
	Importee string
}

func NewCircularImportError(importer, importee string) *CircularImportError {
	return &CircularImportError{
		runtimeBase: newRuntimeBase(ErrCodeCircularImport, "", importee, 0, "", 0,
			fmt.Sprintf("circular import: %q is already being resolved (imported from %q)", importee, importer)),
		Importer: importer,
		Importee: importee,
	}
}

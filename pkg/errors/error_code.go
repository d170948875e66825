package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Parse-time errors (100-199): raised by the parser/validator while
	// classifying and validating a script, before any code runs.
	ErrCodeParseSyntax                 ErrorCode = 100
	ErrCodeMissingKind                 ErrorCode = 101
	ErrCodeConflictingKind             ErrorCode = 102
	ErrCodeMissingRequiredFunctions    ErrorCode = 103
	ErrCodeNoExports                   ErrorCode = 104
	ErrCodeMultipleExports             ErrorCode = 105
	ErrCodeInvalidInputUsage           ErrorCode = 106
	ErrCodeStrategyGlobalVariable      ErrorCode = 107
	ErrCodeStrategyFunctionInIndicator ErrorCode = 108
	ErrCodeReservedVariableName        ErrorCode = 109
	ErrCodeCircularImportStatic        ErrorCode = 110

	// Runtime errors (200-299): raised while compiling or executing a
	// script inside an ExecutionContext, or while the Importer resolves
	// import_script calls.
	ErrCodeCompilation       ErrorCode = 200
	ErrCodeScriptRuntime     ErrorCode = 201
	ErrCodeScriptNotFound    ErrorCode = 202
	ErrCodeEntrypointMissing ErrorCode = 203
	ErrCodeCircularImport    ErrorCode = 204
	ErrCodeNotAllowed        ErrorCode = 205

	// Registry/namespace errors (300-399)
	ErrCodeNamespaceNotFound ErrorCode = 300

	// Config/version errors (400-499)
	ErrCodeInvalidConfiguration ErrorCode = 400
	ErrCodeVersionMismatch      ErrorCode = 401
)

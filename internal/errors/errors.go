package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Pipeline error codes. Each failure is terminal for the current action but
// never fatal for the process; messages always name the offending
// sheet/column/role so the UI can surface them verbatim.
const (
	CodeUnreadableFile   = "UNREADABLE_FILE"
	CodeEmptyWorkbook    = "EMPTY_WORKBOOK"
	CodeUnknownSheet     = "UNKNOWN_SHEET"
	CodeInvalidHeaderRow = "INVALID_HEADER_ROW"
	CodeMissingRole      = "MISSING_ROLE"
	CodeUnexpectedRole   = "UNEXPECTED_ROLE"
	CodeUnknownColumn    = "UNKNOWN_COLUMN"
	CodeNonNumericAxis   = "NON_NUMERIC_AXIS"
	CodeNonNumericValue  = "NON_NUMERIC_VALUE"
	CodeStaleChartSpec   = "STALE_CHART_SPEC"

	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common error constructors

func UnreadableFile(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeUnreadableFile,
		Message: fmt.Sprintf("file %q is not a readable spreadsheet", path),
		Cause:   cause,
	}
}

func EmptyWorkbook(path string) *AppError {
	return Newf(CodeEmptyWorkbook, "workbook %q contains no sheets", path)
}

func UnknownSheet(name string) *AppError {
	return Newf(CodeUnknownSheet, "sheet %q does not exist in this workbook", name)
}

func InvalidHeaderRow(index, rowCount int) *AppError {
	return Newf(CodeInvalidHeaderRow, "header row %d is out of range (sheet has %d rows)", index, rowCount)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

package common

import "errors"

type Code string

const (
	CodeValidation   Code = "validation"
	CodeIneligible   Code = "ineligible"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal"
)

// Error is the single error shape that crosses layer boundaries. Services
// and repositories attach a code; the HTTP layer maps codes to statuses.
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Reasons []string          `json:"reasons,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// NewIneligibleError carries the evaluator's ordered reason list so the
// caller sees every failed check, not just the first.
func NewIneligibleError(reasons []string) *Error {
	return &Error{Code: CodeIneligible, Message: "not eligible", Reasons: reasons}
}

func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

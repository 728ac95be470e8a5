package engine

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure surfaced to MCP callers.
// Values follow JSON-RPC where a standard code exists.
type ErrorCode int64

const (
	CodeInvalidRequest ErrorCode = -32600
	CodeMethodNotFound ErrorCode = -32601
	CodeInternalError  ErrorCode = -32603
	CodeNotFound       ErrorCode = 404
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidRequest:
		return "InvalidRequest"
	case CodeMethodNotFound:
		return "MethodNotFound"
	case CodeInternalError:
		return "InternalError"
	case CodeNotFound:
		return "NotFound"
	}
	return fmt.Sprintf("ErrorCode(%d)", int64(c))
}

// Error is a typed failure. Message is safe to show to the caller;
// Err keeps the underlying cause for logs and errors.Is/As.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidRequest reports malformed input.
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// MethodNotFound reports an unknown tool or resource type.
func MethodNotFound(format string, args ...any) *Error {
	return &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a video the provider does not know.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a collaborator failure behind a caller-safe message.
func Internal(cause error, format string, args ...any) *Error {
	return &Error{Code: CodeInternalError, Message: fmt.Sprintf(format, args...), Err: cause}
}

// CodeOf returns the code of the first *Error in err's chain,
// or CodeInternalError for untyped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalError
}

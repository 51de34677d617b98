// Package apperror carries the domain error taxonomy from usecases to the
// HTTP boundary, where each Kind maps to a status code.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Machine-readable sub-codes attached to Unauthorized errors.
const (
	CodeEmailNotVerified     = "EMAIL_NOT_VERIFIED"
	CodeOTPExpired           = "OTP_EXPIRED"
	CodeInvalidOTP           = "INVALID_OTP"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeRegistrationNotFound = "REGISTRATION_NOT_FOUND"
	CodeInvalidRefreshToken  = "INVALID_REFRESH_TOKEN"
	CodeInvalidResetToken    = "INVALID_RESET_TOKEN"
	CodeInvalidAccessToken   = "INVALID_ACCESS_TOKEN"
	CodeForbidden            = "FORBIDDEN"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func BadRequest(message string, fields map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Fields: fields}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// Internalf wraps err with context, keeping it out of the client-facing message.
func Internalf(err error, format string, args ...any) *Error {
	return Internal(fmt.Errorf(format+": %w", append(args, err)...))
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports KindInternal for errors outside the taxonomy.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the sub-code of err, or "" when none is attached.
func CodeOf(err error) string {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

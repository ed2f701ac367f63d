// Package errorx provides errors carrying a registered business code, so a
// transport layer can turn any error chain into a status and a message.
package errorx

import (
	"errors"
	"fmt"
)

type withCode struct {
	msg   string
	code  int
	cause error
}

// WithCode returns a new coded error.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		msg:  fmt.Sprintf(format, args...),
		code: code,
	}
}

// WrapC annotates err with a code and message. WrapC returns nil if err is nil.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{
		msg:   fmt.Sprintf(format, args...),
		code:  code,
		cause: err,
	}
}

func (w *withCode) Error() string {
	if w.cause == nil {
		return w.msg
	}
	return w.msg + ": " + w.cause.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (w *withCode) Unwrap() error { return w.cause }

// Code returns the business code.
func (w *withCode) Code() int { return w.code }

func asWithCode(err error) (*withCode, bool) {
	var v *withCode
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

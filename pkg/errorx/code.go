package errorx

import (
	"fmt"
	"net/http"
	"sync"
)

// Coder describes an error code: its business value, the HTTP status it maps
// to, and a user-facing message.
type Coder interface {
	// HTTPStatus is the status code returned to HTTP callers.
	HTTPStatus() int
	// String is the external, user-facing message.
	String() string
	// Reference points at documentation for the code, may be empty.
	Reference() string
	// Code is the business error code.
	Code() int
}

// ErrUnknown is used for errors that carry no registered code.
const ErrUnknown = 1

type defaultCoder struct {
	code int
	http int
	ext  string
	ref  string
}

func (c defaultCoder) Code() int { return c.code }

func (c defaultCoder) String() string { return c.ext }

func (c defaultCoder) Reference() string { return c.ref }

func (c defaultCoder) HTTPStatus() int {
	if c.http == 0 {
		return http.StatusInternalServerError
	}
	return c.http
}

var unknownCoder = defaultCoder{
	code: ErrUnknown,
	http: http.StatusInternalServerError,
	ext:  "An internal server error occurred",
}

var (
	codes   = map[int]Coder{}
	codeMux sync.RWMutex
)

// Register registers coder, replacing any coder with the same code.
// Registering ErrUnknown panics.
func Register(coder Coder) {
	if coder.Code() == ErrUnknown {
		panic("code `1` is reserved as unknown error code")
	}
	codeMux.Lock()
	defer codeMux.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister is like Register but panics when the code is already taken.
func MustRegister(coder Coder) {
	if coder.Code() == ErrUnknown {
		panic("code `1` is reserved as unknown error code")
	}
	codeMux.Lock()
	defer codeMux.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code: %d already exist", coder.Code()))
	}
	codes[coder.Code()] = coder
}

// Lookup returns the coder registered for code.
func Lookup(code int) (Coder, bool) {
	codeMux.RLock()
	defer codeMux.RUnlock()
	c, ok := codes[code]
	return c, ok
}

// ParseCoder returns the Coder of the outermost coded error in err's chain,
// or the unknown coder.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	if v, ok := asWithCode(err); ok {
		if coder, ok := Lookup(v.code); ok {
			return coder
		}
	}
	return unknownCoder
}

// IsCode reports whether any coded error in err's chain carries code.
func IsCode(err error, code int) bool {
	for err != nil {
		v, ok := asWithCode(err)
		if !ok {
			return false
		}
		if v.code == code {
			return true
		}
		err = v.cause
	}
	return false
}

func init() {
	codes[unknownCoder.Code()] = unknownCoder
}

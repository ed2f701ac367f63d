package validation

import (
	"strings"
)

// Reason is the machine-readable failure signal of one field.
type Reason string

const (
	ReasonRequired      Reason = "required"
	ReasonInvalidFormat Reason = "invalid format"
	ReasonPolicy        Reason = "policy violation"
	ReasonFormat        Reason = "format"
	ReasonRange         Reason = "range"
	ReasonMismatch      Reason = "mismatch"
	ReasonInvalid       Reason = "invalid"
)

// FieldError is a single failed rule. Field is the JSON name of the field.
type FieldError struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// Errors holds every field that failed, in form order. A field appears at
// most once.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the error reported for field.
func (e Errors) Get(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Has reports whether field failed with reason.
func (e Errors) Has(field string, reason Reason) bool {
	fe, ok := e.Get(field)
	return ok && fe.Reason == reason
}

// Fields returns the names of the failed fields.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}

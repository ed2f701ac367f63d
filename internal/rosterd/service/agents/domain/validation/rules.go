package validation

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Custom validator tags used on entity.AgentInput.
const (
	tagPhone          = "phone10"
	tagStrongPassword = "strongpassword"
	tagISODate        = "isodate"
	tagAgeMatch       = "agematch"
	tagNotBlank       = "notblank"
)

// MinPasswordLength is the minimum password length in characters.
const MinPasswordLength = 8

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidPhone reports whether s is exactly ten ASCII digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// StrongPassword reports whether s has at least MinPasswordLength
// characters, an ASCII lowercase letter, an ASCII uppercase letter, a digit
// and a symbol, and no whitespace.
func StrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := ParseBirthdate(s)
	return err == nil
}

func isPhone(fl validator.FieldLevel) bool {
	return ValidPhone(fl.Field().String())
}

func isStrongPassword(fl validator.FieldLevel) bool {
	return StrongPassword(fl.Field().String())
}

func isISODate(fl validator.FieldLevel) bool {
	return ValidDate(fl.Field().String())
}

type rule struct {
	reason  Reason
	message string
}

// rules maps a (field, tag) failure to its reason and message. Anything not
// listed falls back to a generic required/invalid message.
var rules = map[[2]string]rule{
	{"email", "email"}:              {ReasonInvalidFormat, "Invalid email"},
	{"password", tagStrongPassword}: {ReasonPolicy, "Password must be at least 8 characters, include uppercase, lowercase, number, and special character, and contain no spaces"},
	{"phone", tagPhone}:             {ReasonFormat, "Phone must be 10 digits"},
	{"age", "min"}:                  {ReasonRange, "Minimum age is 18"},
	{"age", "max"}:                  {ReasonRange, "Maximum age is 100"},
	{"age", tagAgeMatch}:            {ReasonMismatch, "Age does not match birthdate"},
	{"birthdate", tagISODate}:       {ReasonRequired, "Birthdate must be a valid date (YYYY-MM-DD)"},
	{"experience", "gte"}:           {ReasonInvalid, "Experience cannot be negative"},
}

// fieldOrder is the form order used to sort reported errors.
var fieldOrder = map[string]int{
	"name":          0,
	"email":         1,
	"password":      2,
	"phone":         3,
	"qualification": 4,
	"age":           5,
	"birthdate":     6,
	"address":       7,
	"department":    8,
	"experience":    9,
}

var labels = map[string]string{
	"name":          "Name",
	"email":         "Email",
	"password":      "Password",
	"phone":         "Phone",
	"qualification": "Qualification",
	"age":           "Age",
	"birthdate":     "Birthdate",
	"address":       "Address",
	"department":    "Department",
	"experience":    "Experience",
}

func newFieldError(field, tag string) FieldError {
	if r, ok := rules[[2]string{field, tag}]; ok {
		return FieldError{Field: field, Reason: r.reason, Message: r.message}
	}
	label, ok := labels[field]
	if !ok {
		label = field
	}
	if tag == "required" || tag == tagNotBlank {
		return FieldError{Field: field, Reason: ReasonRequired, Message: label + " is required"}
	}
	return FieldError{Field: field, Reason: ReasonInvalid, Message: label + " is invalid"}
}

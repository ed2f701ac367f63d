// Package validation holds the acceptance rules a form payload must pass
// before it reaches the record store.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
)

type ctxKey struct{}

var skipAgeCheckKey ctxKey

// Validator applies the per-field rules and the age/birthdate cross-check.
// A Validator is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	clock    func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock the age cross-check is evaluated against.
func WithClock(clock func() time.Time) Option {
	return func(v *Validator) {
		if clock != nil {
			v.clock = clock
		}
	}
}

// New builds a Validator with the canonical (strict) policy.
func New(opts ...Option) *Validator {
	v := &Validator{clock: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(validate, tagPhone, isPhone)
	mustRegister(validate, tagStrongPassword, isStrongPassword)
	mustRegister(validate, tagISODate, isISODate)
	mustRegister(validate, tagNotBlank, validators.NotBlank)
	validate.RegisterStructValidationCtx(v.ageMatchesBirthdate, entity.AgentInput{})

	v.validate = validate
	return v
}

func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Validate checks a form payload. It returns nil or an Errors value listing
// every failing field.
func (v *Validator) Validate(in *entity.AgentInput) error {
	return v.validateInput(context.Background(), in)
}

// RecordOption tunes ValidateRecord.
type RecordOption func(context.Context) context.Context

// SkipAgeCrossCheck disables the age/birthdate rule. Used for restored
// records whose age was correct as of their submission date.
func SkipAgeCrossCheck() RecordOption {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, skipAgeCheckKey, true)
	}
}

// ValidateRecord checks a stored record with the same rules as a form
// payload.
func (v *Validator) ValidateRecord(a *entity.Agent, opts ...RecordOption) error {
	if a == nil {
		return Errors{{Field: "agent", Reason: ReasonRequired, Message: "Agent is required"}}
	}
	ctx := context.Background()
	for _, opt := range opts {
		ctx = opt(ctx)
	}
	return v.validateInput(ctx, entity.InputFromAgent(a))
}

func (v *Validator) validateInput(ctx context.Context, in *entity.AgentInput) error {
	if in == nil {
		return Errors{{Field: "agent", Reason: ReasonRequired, Message: "Agent is required"}}
	}
	err := v.validate.StructCtx(ctx, in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		out = append(out, newFieldError(fe.Field(), fe.Tag()))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return fieldOrder[out[i].Field] < fieldOrder[out[j].Field]
	})
	return out
}

// ageMatchesBirthdate reports a mismatch only when age passed its own range
// rule and birthdate parses, so each field carries a single reason.
func (v *Validator) ageMatchesBirthdate(ctx context.Context, sl validator.StructLevel) {
	if skip, _ := ctx.Value(skipAgeCheckKey).(bool); skip {
		return
	}
	in, ok := sl.Current().Interface().(entity.AgentInput)
	if !ok || in.Age == nil {
		return
	}
	age := *in.Age
	if age < 18 || age > 100 {
		return
	}
	b, err := ParseBirthdate(in.Birthdate)
	if err != nil {
		return
	}
	if ComputeAge(b, v.clock()) != age {
		sl.ReportError(age, "age", "Age", tagAgeMatch, "")
	}
}

package validation

import (
	"testing"
	"time"

	"github.com/bytedance/gg/gptr"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func fixedClock(t *testing.T, s string) func() time.Time {
	d := date(t, s)
	return func() time.Time { return d }
}

func validInput() *entity.AgentInput {
	return &entity.AgentInput{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Password:      "Abcdef1!",
		Phone:         "1234567890",
		Qualification: "MBA",
		Age:           gptr.Of(24),
		Birthdate:     "2000-06-15",
	}
}

func asErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	verrs, ok := err.(Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return verrs
}

func TestComputeAge(t *testing.T) {
	cases := []struct {
		birth, now string
		want       int
	}{
		{"2000-06-15", "2024-06-14", 23},
		{"2000-06-15", "2024-06-15", 24},
		{"2000-06-15", "2024-06-16", 24},
		{"2000-06-15", "2024-05-20", 23},
		{"2000-06-15", "2024-07-01", 24},
		{"2000-02-29", "2023-02-28", 22},
		{"2000-02-29", "2023-03-01", 23},
		{"2000-02-29", "2024-02-29", 24},
	}
	for _, tc := range cases {
		t.Run(tc.birth+"@"+tc.now, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeAge(date(t, tc.birth), date(t, tc.now)))
		})
	}
}

func TestAgeOn(t *testing.T) {
	age, err := AgeOn("2000-06-15", date(t, "2024-06-15"))
	require.NoError(t, err)
	assert.Equal(t, 24, age)

	_, err = AgeOn("15/06/2000", date(t, "2024-06-15"))
	assert.Error(t, err)
}

func TestValidateAccepts(t *testing.T) {
	v := New(WithClock(fixedClock(t, "2024-06-15")))
	assert.NoError(t, v.Validate(validInput()))

	in := validInput()
	in.Address = "221B Baker Street"
	in.Department = "Sales"
	in.Experience = gptr.Of(0.0)
	assert.NoError(t, v.Validate(in))
}

func TestValidateAgeMismatch(t *testing.T) {
	v := New(WithClock(fixedClock(t, "2024-06-15")))
	in := validInput()
	in.Age = gptr.Of(23)

	verrs := asErrors(t, v.Validate(in))
	assert.True(t, verrs.Has("age", ReasonMismatch))
	assert.Len(t, verrs, 1)

	// One day earlier the anniversary has not happened yet.
	v = New(WithClock(fixedClock(t, "2024-06-14")))
	assert.NoError(t, v.Validate(in))
}

func TestValidateAgeRange(t *testing.T) {
	v := New(WithClock(fixedClock(t, "2024-06-15")))
	for _, age := range []int{0, 17, 101} {
		in := validInput()
		in.Age = gptr.Of(age)
		verrs := asErrors(t, v.Validate(in))
		assert.True(t, verrs.Has("age", ReasonRange), "age %d", age)
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	v := New()
	verrs := asErrors(t, v.Validate(&entity.AgentInput{}))

	assert.Equal(t, []string{"name", "email", "password", "phone", "qualification", "age", "birthdate"}, verrs.Fields())
	for _, fe := range verrs {
		assert.Equal(t, ReasonRequired, fe.Reason, fe.Field)
	}
	fe, ok := verrs.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Name is required", fe.Message)
}

func TestValidateBlankText(t *testing.T) {
	v := New(WithClock(fixedClock(t, "2024-06-15")))
	in := validInput()
	in.Name = "   "
	in.Qualification = "\t\n"

	verrs := asErrors(t, v.Validate(in))
	assert.Equal(t, []string{"name", "qualification"}, verrs.Fields())
	assert.True(t, verrs.Has("name", ReasonRequired))
	assert.True(t, verrs.Has("qualification", ReasonRequired))
	fe, _ := verrs.Get("qualification")
	assert.Equal(t, "Qualification is required", fe.Message)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidPhone("1234567890"))
	for _, bad := range []string{"12345", "12345678901", "12345abcde", "123 456 78"} {
		assert.False(t, ValidPhone(bad), bad)
	}

	v := New(WithClock(fixedClock(t, "2024-06-15")))
	in := validInput()
	in.Phone = "12345abcde"
	assert.True(t, asErrors(t, v.Validate(in)).Has("phone", ReasonFormat))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, StrongPassword("Abcdef1!"))
	for _, bad := range []string{"abcdefgh", "ABCDEFG1!", "Abcdefgh!", "Abcdefg1", "Abc1!", "Abcd ef1!"} {
		assert.False(t, StrongPassword(bad), bad)
	}

	v := New(WithClock(fixedClock(t, "2024-06-15")))
	in := validInput()
	in.Password = "abcdefgh"
	assert.True(t, asErrors(t, v.Validate(in)).Has("password", ReasonPolicy))
}

func TestValidateFormats(t *testing.T) {
	v := New(WithClock(fixedClock(t, "2024-06-15")))

	in := validInput()
	in.Email = "not-an-email"
	assert.True(t, asErrors(t, v.Validate(in)).Has("email", ReasonInvalidFormat))

	in = validInput()
	in.Birthdate = "2000-13-01"
	verrs := asErrors(t, v.Validate(in))
	assert.True(t, verrs.Has("birthdate", ReasonRequired))
	_, ageFailed := verrs.Get("age")
	assert.False(t, ageFailed, "age is not cross-checked against an unparseable birthdate")

	in = validInput()
	in.Experience = gptr.Of(-1.0)
	assert.True(t, asErrors(t, v.Validate(in)).Has("experience", ReasonInvalid))
}

func TestValidateRecord(t *testing.T) {
	v := New(WithClock(fixedClock(t, "2030-01-01")))
	stored := validInput().ToAgent(42)

	verrs := asErrors(t, v.ValidateRecord(stored))
	assert.True(t, verrs.Has("age", ReasonMismatch))

	assert.NoError(t, v.ValidateRecord(stored, SkipAgeCrossCheck()))

	stored.Phone = "12"
	verrs = asErrors(t, v.ValidateRecord(stored, SkipAgeCrossCheck()))
	assert.True(t, verrs.Has("phone", ReasonFormat))

	assert.Error(t, v.ValidateRecord(nil))
}

func TestErrorsMessage(t *testing.T) {
	verrs := Errors{
		{Field: "name", Reason: ReasonRequired, Message: "Name is required"},
		{Field: "phone", Reason: ReasonFormat, Message: "Phone must be 10 digits"},
	}
	assert.Equal(t, "validation failed: name: Name is required; phone: Phone must be 10 digits", verrs.Error())
}

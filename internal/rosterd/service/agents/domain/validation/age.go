package validation

import (
	"time"
)

// DateLayout is the ISO calendar date layout used for birthdates.
const DateLayout = "2006-01-02"

// ParseBirthdate parses a YYYY-MM-DD calendar date.
func ParseBirthdate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ComputeAge returns the number of whole years elapsed between birthdate and
// now: the year difference, minus one when now's (month, day) precedes the
// birthday's (month, day).
//
// Both values are read as calendar dates in their own location, so a
// birthdate parsed in UTC compares correctly against a local "now".
func ComputeAge(birthdate, now time.Time) int {
	years := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		years--
	}
	return years
}

// AgeOn parses birthdate and returns the age as of now.
func AgeOn(birthdate string, now time.Time) (int, error) {
	b, err := ParseBirthdate(birthdate)
	if err != nil {
		return 0, err
	}
	return ComputeAge(b, now), nil
}

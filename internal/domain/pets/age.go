package pets

import (
	"strings"
	"time"
)

const birthdateLayout = "2006-01-02"

// AgeInYears returns the number of full years between birthdate and now: the
// count only increments once the anniversary day is reached.
func AgeInYears(birthdate, now time.Time) int {
	years := now.Year() - birthdate.Year()
	if birthdate.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}

// AgeFromString parses a YYYY-MM-DD birthdate and returns the age in full
// years. ok is false when the value is empty or does not parse; callers treat
// that as "age unknown", never as a failure.
func AgeFromString(birthdate string, now time.Time) (int, bool) {
	birthdate = strings.TrimSpace(birthdate)
	if birthdate == "" {
		return 0, false
	}
	parsed, err := time.Parse(birthdateLayout, birthdate)
	if err != nil {
		return 0, false
	}
	return AgeInYears(parsed, now), true
}

// ValidBirthdate reports whether the value is a parseable YYYY-MM-DD date.
func ValidBirthdate(value string) bool {
	_, err := time.Parse(birthdateLayout, strings.TrimSpace(value))
	return err == nil
}

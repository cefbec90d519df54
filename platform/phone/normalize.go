// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "BR"

// ErrInvalid is returned when a number cannot be parsed as a valid Brazilian
// or international number.
var ErrInvalid = errors.New("invalid phone number")

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	normalized, err := ParseE164(input)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return normalized
}

// ParseE164 parses a number using Brazil as the default region and returns
// it in E.164 form.
func ParseE164(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalid
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return "", ErrInvalid
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// FormatNational renders a number the way it is printed on Brazilian
// screens, e.g. "(71) 99999-0000".
func FormatNational(input string) string {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), defaultRegion)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return phonenumbers.Format(number, phonenumbers.NATIONAL)
}

package catalog

import (
	"strings"
	"unicode"

	"sst_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// RegisterValidations installs the reference-data tags used by request DTOs:
// segment, headcount_band, city, exam_type, unit and cnpj.
func RegisterValidations(val *validator.Validator) error {
	rules := map[string]playground.Func{
		"segment": func(fl playground.FieldLevel) bool {
			return IsSegment(fl.Field().String())
		},
		"headcount_band": func(fl playground.FieldLevel) bool {
			_, ok := Band(fl.Field().String())
			return ok
		},
		"city": func(fl playground.FieldLevel) bool {
			return IsCity(fl.Field().String())
		},
		"exam_type": func(fl playground.FieldLevel) bool {
			return IsExamType(fl.Field().String())
		},
		"unit": func(fl playground.FieldLevel) bool {
			return IsUnit(fl.Field().String())
		},
		"cnpj": func(fl playground.FieldLevel) bool {
			return IsCNPJFormat(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := val.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// IsCNPJFormat accepts 14 digits with optional ". / -" punctuation.
// Check digits are not verified.
func IsCNPJFormat(s string) bool {
	digits := 0
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == '/' || r == '-':
		default:
			return false
		}
	}
	return digits == 14
}

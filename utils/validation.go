// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidatePhone accepts the formats customers and staff actually type in:
// local numbers like 01-4412345 or 9841234567, or +country-code forms.
// Spaces, dashes and parentheses are ignored.
func ValidatePhone(phone string) bool {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
	return phonePattern.MatchString(cleaned)
}

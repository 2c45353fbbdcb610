package utils

import "errors"

// ErrPasswordNotNumeric is returned when an operator password has non-digit characters.
var ErrPasswordNotNumeric = errors.New("password must contain only digits")

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

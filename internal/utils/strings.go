package utils

import (
	"strings"
	"unicode"
)

// NormalizeEmail is the lookup form of an email: trimmed and lower-cased.
// Customers are stored and found by this form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone drops separators and anything else that is not a digit.
// A single leading "+" survives.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if strings.HasPrefix(phone, "+") && digits != "" {
		return "+" + digits
	}
	return digits
}

// CollapseSpaces trims s and folds inner runs of whitespace to one space,
// for names and addresses typed into forms.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateClienteCodigo enforces the CLI-XXXX style client codes used
// across the CRM (uppercase letters, digits, dashes, 3-20 chars)
func ValidateClienteCodigo(code string) bool {
	match, _ := regexp.MatchString(`^[A-Z0-9][A-Z0-9-]{2,19}$`, code)
	return match
}

package document

import "strings"

// OnlyDigits drops every character that is not an ASCII digit.
func OnlyDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CleanDocument keeps only ASCII letters and digits, which is the form the
// dispatcher measures and hands to the validators.
func CleanDocument(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// digitValues maps a string of ASCII digits to their integer values.
// Callers must pass the output of OnlyDigits.
func digitValues(digits string) []int {
	values := make([]int, len(digits))
	for i := 0; i < len(digits); i++ {
		values[i] = int(digits[i] - '0')
	}
	return values
}

// isRepeatedDigit reports whether digits is one digit repeated for its whole length.
func isRepeatedDigit(digits string) bool {
	if digits == "" {
		return false
	}
	return strings.Repeat(digits[:1], len(digits)) == digits
}

// Package phone normalizes North American phone numbers the way players type
// them into the signup form.
package phone

import "strings"

// DigitsLength is the number of digits a valid number reduces to.
const DigitsLength = 10

// Digits strips every character that is not an ASCII digit.
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// IsValid reports whether value reduces to exactly ten digits.
func IsValid(value string) bool {
	return len(Digits(value)) == DigitsLength
}

// Format renders value progressively as "(xxx) xxx-xxxx". Partial input is
// formatted as far as it goes and digits past the tenth are dropped.
func Format(value string) string {
	digits := Digits(value)
	if len(digits) > DigitsLength {
		digits = digits[:DigitsLength]
	}

	n := len(digits)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("(")
	b.WriteString(digits[:min(n, 3)])

	if n >= 4 {
		b.WriteString(") ")
		b.WriteString(digits[3:min(n, 6)])
	}

	if n >= 7 {
		b.WriteString("-")
		b.WriteString(digits[6:n])
	}

	return b.String()
}

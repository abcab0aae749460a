package validators

import (
	"strings"
	"time"
	"unicode"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeDate accepts YYYY-MM-DD and returns it in canonical form.
func NormalizeDate(s string) (string, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

// NormalizeTime accepts HH:MM or HH:MM:SS (seconds must be zero) and
// returns HH:MM.
func NormalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t.Format(TimeLayout), true
	}
	if t, err := time.Parse("15:04:05", s); err == nil && t.Second() == 0 {
		return t.Format(TimeLayout), true
	}
	return "", false
}

// IsPhoneValid allows digits plus the usual separators and needs 7 to 15
// digits overall.
func IsPhoneValid(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '+' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

package domain

import (
	"fmt"
	"time"
)

// DateLayout is the layout of Reminders.scheduled_at.
const DateLayout = "2006-01-02"

const datePattern = "dddd-dd-dd"

// ValidateDate checks that s is shaped dddd-dd-dd. Only the structure is
// checked: "9999-99-99" passes.
func ValidateDate(s string) error {
	ok := len(s) == len(datePattern)
	for i := 0; ok && i < len(s); i++ {
		switch datePattern[i] {
		case 'd':
			ok = s[i] >= '0' && s[i] <= '9'
		case '-':
			ok = s[i] == '-'
		}
	}
	if !ok {
		return &ValidationError{
			Code:    CodeInvalidDate,
			Message: fmt.Sprintf("%s is not a valid date format", s),
			Input:   s,
			Hints:   []string{"dates are written as YYYY-MM-DD, e.g. 2024-01-05"},
		}
	}
	return nil
}

// FormatDate renders t's calendar day in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

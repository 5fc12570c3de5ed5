package domain

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Unit is the calendar unit of a reminder period.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

// PeriodModifier maps a user-facing modifier letter to its unit.
type PeriodModifier struct {
	Modifier string
	Name     string
	Unit     Unit
}

// PeriodModifiers lists the accepted modifiers in unit order.
var PeriodModifiers = []PeriodModifier{
	{Modifier: "d", Name: "days", Unit: Day},
	{Modifier: "w", Name: "weeks", Unit: Week},
	{Modifier: "m", Name: "months", Unit: Month},
	{Modifier: "y", Name: "years", Unit: Year},
}

func (u Unit) valid() bool { return u >= Day && u <= Year }

func (u Unit) String() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return PeriodModifiers[u].Name
}

// Period is a recurrence interval of Length units. Length is always positive
// for a Period returned by ParsePeriod.
type Period struct {
	Unit   Unit
	Length uint64
}

// Render returns the SQLite date modifier stored in Reminders.period.
// Weeks are rendered as days; the unit is not recoverable from the result.
// An unknown unit renders as the empty string.
func (p Period) Render() string {
	switch p.Unit {
	case Day:
		return fmt.Sprintf("+%d days", p.Length)
	case Week:
		return fmt.Sprintf("+%d days", p.Length*7)
	case Month:
		return fmt.Sprintf("+%d months", p.Length)
	case Year:
		return fmt.Sprintf("+%d years", p.Length)
	default:
		return ""
	}
}

func (p Period) String() string {
	if !p.Unit.valid() {
		return fmt.Sprintf("%d%s", p.Length, p.Unit)
	}
	return fmt.Sprintf("%d%s", p.Length, PeriodModifiers[p.Unit].Modifier)
}

// Validate reports a zero length or an unknown unit as CodeInvalidPeriod.
func (p Period) Validate() error {
	if p.Length == 0 || !p.Unit.valid() {
		return invalidPeriod(p.String())
	}
	return nil
}

// ParsePeriod parses a leading unsigned length followed by one modifier
// letter, e.g. "3w". The length must have at least one digit and be positive.
func ParsePeriod(s string) (Period, error) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return Period{}, invalidPeriod(s)
	}

	length, err := strconv.ParseUint(s[:n], 10, 32)
	if err != nil || length == 0 {
		return Period{}, invalidPeriod(s)
	}

	modifier := s[n:]
	for _, pm := range PeriodModifiers {
		if pm.Modifier == modifier {
			return Period{Unit: pm.Unit, Length: length}, nil
		}
	}

	return Period{}, &ValidationError{
		Code:    CodeInvalidPeriodModifier,
		Message: fmt.Sprintf("unknown period modifier %q, expected modifiers are", modifier),
		Input:   s,
		Hints:   periodHints(func() uint64 { return length }),
	}
}

func invalidPeriod(s string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidPeriod,
		Message: fmt.Sprintf("invalid period %q, expected something like", s),
		Input:   s,
		Hints:   periodHints(func() uint64 { return uint64(rand.IntN(9) + 1) }),
	}
}

func periodHints(length func() uint64) []string {
	hints := make([]string, 0, len(PeriodModifiers))
	for _, pm := range PeriodModifiers {
		l := length()
		hints = append(hints, fmt.Sprintf("%d%s - means every %d %s", l, pm.Modifier, l, pm.Name))
	}
	return hints
}

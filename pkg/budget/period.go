package budget

import (
	"fmt"
	"strings"
	"time"
)

// PeriodType is the recurrence unit of a budget or spending limit.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodYearly    PeriodType = "YEARLY"
	PeriodCustom    PeriodType = "CUSTOM"
)

var periodTypes = []PeriodType{PeriodMonthly, PeriodQuarterly, PeriodYearly, PeriodCustom}

// ParsePeriodType parses a period type case-insensitively.
func ParsePeriodType(s string) (PeriodType, error) {
	t := PeriodType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodType, s)
	}
	return t, nil
}

func (t PeriodType) Valid() bool {
	for _, v := range periodTypes {
		if t == v {
			return true
		}
	}
	return false
}

// months returns the length of the period type in calendar months. It is
// zero for PeriodCustom.
func (t PeriodType) months() int {
	switch t {
	case PeriodMonthly:
		return 1
	case PeriodQuarterly:
		return 3
	case PeriodYearly:
		return 12
	}
	return 0
}

// Window returns the calendar window of the period type that contains t,
// with an exclusive end: the calendar month, quarter or year in UTC.
// ok is false for PeriodCustom, which has no calendar window.
func (t PeriodType) Window(at time.Time) (start, end time.Time, ok bool) {
	at = at.UTC()

	switch t {
	case PeriodMonthly:
		start = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PeriodQuarterly:
		firstMonth := time.Month((int(at.Month())-1)/3*3 + 1)
		start = time.Date(at.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
	case PeriodYearly:
		start = time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, false
	}

	return start, start.AddDate(0, t.months(), 0), true
}

// Period is a time range with a period type. Both ends are inclusive.
type Period struct {
	start      time.Time
	end        time.Time
	periodType PeriodType
}

// NewPeriod creates a period starting at start.
//
// For MONTHLY, QUARTERLY and YEARLY, the end is start plus one month, three
// months or one year, and customEnd is ignored. CUSTOM periods require
// customEnd.
//
// Month arithmetic follows time.AddDate, so an overflowing day of month is
// normalized: January 31 plus one month is March 3, or March 2 in leap years.
func NewPeriod(start time.Time, t PeriodType, customEnd *time.Time) (Period, error) {
	if !t.Valid() {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriodType, t)
	}

	start = start.UTC()

	var end time.Time
	if t == PeriodCustom {
		if customEnd == nil {
			return Period{}, ErrCustomPeriodEndRequired
		}
		end = customEnd.UTC()
	} else {
		end = start.AddDate(0, t.months(), 0)
	}

	return PeriodFromDates(start, end, t)
}

// PeriodFromDates restores a period from explicit dates. The end must be
// strictly after the start.
func PeriodFromDates(start, end time.Time, t PeriodType) (Period, error) {
	if !t.Valid() {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriodType, t)
	}

	if !end.After(start) {
		return Period{}, ErrPeriodEndBeforeStart
	}

	return Period{
		start:      start.UTC(),
		end:        end.UTC(),
		periodType: t,
	}, nil
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }
func (p Period) Type() PeriodType { return p.periodType }

// IsActive reports whether t is within the period, including both ends.
func (p Period) IsActive(t time.Time) bool {
	return !t.Before(p.start) && !t.After(p.end)
}

// HasEnded reports whether t is after the end of the period.
func (p Period) HasEnded(t time.Time) bool {
	return t.After(p.end)
}

// HasStarted reports whether t is at or after the start of the period.
func (p Period) HasStarted(t time.Time) bool {
	return !t.Before(p.start)
}

// DurationInDays returns the length of the period in days, rounded up.
func (p Period) DurationInDays() int {
	d := p.end.Sub(p.start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Equal reports whether both periods have the same type and instants.
func (p Period) Equal(o Period) bool {
	return p.periodType == o.periodType && p.start.Equal(o.start) && p.end.Equal(o.end)
}

func (p Period) String() string {
	return fmt.Sprintf("%s: %s to %s", p.periodType, p.start.Format(time.DateOnly), p.end.Format(time.DateOnly))
}

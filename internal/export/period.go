package export

import (
	"fmt"
	"time"
)

// Type selects which period a scheduled run covers.
type Type string

const (
	// TypeMonthly exports the whole previous calendar month.
	TypeMonthly Type = "monthly"
	// TypeWeekly exports the current month so far.
	TypeWeekly Type = "weekly"
)

// Period is the target year-month of one export run.
type Period struct {
	Year  int
	Month time.Month
}

// String formats the period the way the freee API expects, e.g. "2025-05".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// PeriodFor derives the export period from the run type: monthly runs cover
// the previous month, weekly runs the month in progress.
func PeriodFor(t Type, today time.Time) (Period, error) {
	switch t {
	case TypeMonthly:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		lastOfPrevious := firstOfMonth.AddDate(0, 0, -1)
		return Period{Year: lastOfPrevious.Year(), Month: lastOfPrevious.Month()}, nil
	case TypeWeekly:
		return Period{Year: today.Year(), Month: today.Month()}, nil
	default:
		return Period{}, fmt.Errorf("%w: %q", ErrUnknownExportType, t)
	}
}

// ParsePeriod parses an explicit "2006-01" override.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

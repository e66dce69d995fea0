package schedule

import (
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date (zero value means "absent")
// =============================================================================

// Date wraps time.Time at day granularity. Spreadsheet cells that fail to
// parse become the zero Date; downstream logic checks IsZero rather than
// handling parse errors.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// dateLayouts are the formats seen in exported schedule sheets: ISO dates,
// Brazilian day-first dates, and the datetime forms spreadsheet tools emit.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	time.RFC3339,
}

// ParseDate parses a cell value into a Date. Unparseable values yield the
// zero Date - malformed dates are treated as absent, never as errors.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day())
		}
	}
	return Date{}
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) IsZero() bool { return d.Time.IsZero() }

// String returns the ISO form, or empty for an absent date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// FormatBR formats for the regional convention (DD/MM/YYYY), with "N/A" for
// absent dates.
func (d Date) FormatBR() string {
	if d.IsZero() {
		return "N/A"
	}
	return d.Time.Format("02/01/2006")
}

// DaysBetween returns the signed number of days from one date to another.
// Negative when `to` precedes `from` (overlapping leave periods).
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

package claims

import (
	"encoding/json"
	"fmt"
	"time"
)

// readDateFormat is the permissive parse format (single-digit month/day allowed).
const readDateFormat = "2006-1-2"

// DateFormat is the canonical ISO-8601 representation used everywhere a
// date is written out (store, JSON, reasons).
const DateFormat = "2006-01-02"

// Date represents a calendar date with day-level granularity.
//
// Loss dates, report dates, policy windows and transaction dates all carry
// no meaningful time-of-day component, so comparisons happen on whole days
// at midnight UTC.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// ParseDate parses a date in ISO form, tolerating single-digit month and
// day ("2024-6-5").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(readDateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

// DateOf truncates a time.Time to its UTC calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.UTC().Date())
}

// Today returns the current UTC date.
func Today() Date { return DateOf(time.Now()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// String formats the date in ISO-8601. The zero date formats as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// MarshalJSON encodes the date as an ISO-8601 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO-8601 string into the date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

package billing

import (
	"fmt"
	"strconv"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date without zone, serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date, ignoring its location.
func DateOf(t time.Time) Date { return NewDate(t.Date()) }

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is a later day than o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) String() string { return d.t.Format(dateLayout) }

// MarshalJSON writes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// TimeOfDay is a wall clock time, serialized as HH:MM:SS[.ffffff].
type TimeOfDay struct {
	micros int64
}

// NewTimeOfDay returns the time h:m:s.
func NewTimeOfDay(h, m, s int) TimeOfDay {
	return TimeOfDay{micros: (int64(h)*3600 + int64(m)*60 + int64(s)) * 1_000_000}
}

// TimeOfDayFromMicros builds a TimeOfDay from microseconds since midnight.
func TimeOfDayFromMicros(us int64) TimeOfDay { return TimeOfDay{micros: us} }

// Micros returns microseconds since midnight.
func (t TimeOfDay) Micros() int64 { return t.micros }

func (t TimeOfDay) String() string {
	secs := t.micros / 1_000_000
	frac := t.micros % 1_000_000
	s := fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	if frac != 0 {
		s += fmt.Sprintf(".%06d", frac)
	}
	return s
}

// MarshalJSON writes the time as an "HH:MM:SS[.ffffff]" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// Timestamp is a zone-less date and time, serialized as
// YYYY-MM-DDTHH:MM:SS with microseconds only when they are non-zero.
type Timestamp struct {
	t time.Time
}

// TimestampOf wraps t, keeping its wall clock reading.
func TimestampOf(t time.Time) Timestamp { return Timestamp{t: t} }

// Time returns the wrapped wall clock reading.
func (ts Timestamp) Time() time.Time { return ts.t }

func (ts Timestamp) String() string {
	s := ts.t.Format(timestampLayout)
	if us := ts.t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// MarshalJSON writes the timestamp in its String form.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(ts.String())), nil
}

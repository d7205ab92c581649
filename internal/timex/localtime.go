package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// LocalLayout is the naive ISO local date-time written to storage and the
// wire. It carries no zone offset; values are interpreted in time.Local.
const LocalLayout = "2006-01-02T15:04:05.999999999"

// shortLayout is the minute-precision form some clients emit when seconds
// are zero.
const shortLayout = "2006-01-02T15:04"

// FormatLocal renders t in LocalLayout after converting it to local time.
func FormatLocal(t time.Time) string {
	return t.In(time.Local).Format(LocalLayout)
}

// ParseLocal parses a naive local date-time. Fractional seconds are optional
// and a missing seconds field is accepted.
func ParseLocal(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err == nil {
		return t, nil
	}
	if t, err2 := time.ParseInLocation(shortLayout, s, time.Local); err2 == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parse local date-time %q: %w", s, err)
}

// LocalDateTime is a time.Time that marshals to and from LocalLayout.
type LocalDateTime struct {
	time.Time
}

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatLocal(l.Time))
}

func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := ParseLocal(s)
	if err != nil {
		return err
	}
	l.Time = t
	return nil
}

// Ptr converts an optional LocalDateTime to an optional time.Time.
func (l *LocalDateTime) Ptr() *time.Time {
	if l == nil {
		return nil
	}
	t := l.Time
	return &t
}

// FromPtr is the inverse of Ptr.
func FromPtr(t *time.Time) *LocalDateTime {
	if t == nil {
		return nil
	}
	return &LocalDateTime{Time: *t}
}

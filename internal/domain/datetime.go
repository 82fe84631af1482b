package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the wire format for event date-times (no zone offset).
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a wall-clock date-time without a zone. It is stored and compared in UTC.
// JSON input accepts LocalDateTimeLayout or RFC 3339; output is always LocalDateTimeLayout.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime returns a LocalDateTime for the given wall-clock fields.
func NewLocalDateTime(year int, month time.Month, day, hour, min, sec int) LocalDateTime {
	return LocalDateTime{Time: time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// ParseLocalDateTime parses s as LocalDateTimeLayout, falling back to RFC 3339.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	if t, err := time.ParseInLocation(LocalDateTimeLayout, s, time.UTC); err == nil {
		return LocalDateTime{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("invalid date-time %q: expected %s", s, LocalDateTimeLayout)
	}
	return LocalDateTime{Time: t.UTC()}, nil
}

// Before reports whether d is strictly earlier than other.
func (d LocalDateTime) Before(other LocalDateTime) bool {
	return d.Time.Before(other.Time)
}

// String formats d with LocalDateTimeLayout.
func (d LocalDateTime) String() string {
	return d.Time.Format(LocalDateTimeLayout)
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = LocalDateTime{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date-time %s: expected a string", b)
	}
	parsed, err := ParseLocalDateTime(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d LocalDateTime) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time.UTC(), nil
}

// Scan implements sql.Scanner.
func (d *LocalDateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = LocalDateTime{}
	case time.Time:
		*d = LocalDateTime{Time: time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), time.UTC)}
	default:
		return fmt.Errorf("cannot scan %T into LocalDateTime", src)
	}
	return nil
}

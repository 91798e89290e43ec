package entity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, stored in postgres as TIME.
type TimeOfDay struct {
	Hour   int
	Minute int
}

const timeOfDayLayout = "15:04"

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay parses "HH:MM", zero-padded.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the offset from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// On anchors the wall-clock time to the calendar date of day, in day's
// location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("invalid time of day: %s", string(b))
	}
	parsed, err := ParseTimeOfDay(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

func (t *TimeOfDay) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		t.Hour, t.Minute = v.Hour(), v.Minute()
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into TimeOfDay", value)
	}
	return nil
}

func (t *TimeOfDay) scanString(s string) error {
	// lib/pq returns TIME columns as "15:04:05".
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		parsed, err = time.Parse(timeOfDayLayout, s)
		if err != nil {
			return err
		}
	}
	t.Hour, t.Minute = parsed.Hour(), parsed.Minute()
	return nil
}

// internal/daily/daily.go
//
// Puzzle day keys.
//
// A DayKey is the YYYYMMDD integer of the "effective" UTC day: the UTC
// calendar date, advanced by one once the UTC hour reaches the configured
// reset hour. Only UTC is consulted, so every client sees the puzzle roll
// over at the same instant. Day keys are derived on every access and never
// stored as state.

package daily

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultResetHourUTC is the rollover hour used when none is configured.
const DefaultResetHourUTC = 23

// DayKey is an effective puzzle day formatted as YYYYMMDD.
type DayKey int

// Resolve returns the day key for instant t. At exactly resetHourUTC:00:00
// the rollover has already happened.
func Resolve(t time.Time, resetHourUTC int) (DayKey, error) {
	if resetHourUTC < 0 || resetHourUTC > 23 {
		return 0, fmt.Errorf("daily: reset hour %d outside 0..23", resetHourUTC)
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	if u.Hour() >= resetHourUTC {
		d = d.AddDate(0, 0, 1)
	}
	return FromDate(d), nil
}

// MustResolve is Resolve for a reset hour already validated at startup.
func MustResolve(t time.Time, resetHourUTC int) DayKey {
	k, err := Resolve(t, resetHourUTC)
	if err != nil {
		panic(err)
	}
	return k
}

// FromDate formats the UTC calendar date of d as a DayKey.
func FromDate(d time.Time) DayKey {
	y, m, dd := d.UTC().Date()
	return DayKey(y*10000 + int(m)*100 + dd)
}

// ParseDayKey parses an 8-digit YYYYMMDD string and checks it is a real date.
func ParseDayKey(s string) (DayKey, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("daily: day key %q is not YYYYMMDD", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("daily: day key %q is not YYYYMMDD", s)
	}
	k := DayKey(n)
	if FromDate(k.Date()) != k {
		return 0, fmt.Errorf("daily: day key %q is not a calendar date", s)
	}
	return k, nil
}

// String returns the zero-padded 8-digit form used by the override table.
func (k DayKey) String() string { return fmt.Sprintf("%08d", int(k)) }

// Date returns midnight UTC of the day.
func (k DayKey) Date() time.Time {
	n := int(k)
	return time.Date(n/10000, time.Month(n/100%100), n%100, 0, 0, 0, 0, time.UTC)
}

// Weekday is the UTC weekday of the day (Sunday = 0).
func (k DayKey) Weekday() time.Weekday { return k.Date().Weekday() }

package ledger

import "time"

// DayKey returns the calendar date of t in t's location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a DayKey. Empty or malformed keys report false.
func ParseDay(key string) (time.Time, bool) {
	if key == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PrevDay returns the key of the day before key, or "" if key is malformed.
func PrevDay(key string) string {
	t, ok := ParseDay(key)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// DaysBetween counts calendar days from a to b, ignoring clock time and zone.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

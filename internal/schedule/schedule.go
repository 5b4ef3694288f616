// Package schedule resolves which daily event is active and which comes next.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

var (
	ErrTooFewEvents = errors.New("schedule needs at least two events")
	ErrUnsorted     = errors.New("schedule times must be strictly ascending")
	ErrDuplicate    = errors.New("duplicate event name")
	ErrEmptyName    = errors.New("event name is empty")
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a 24h "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("parse time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("parse time %q: bad hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("parse time %q: bad minute", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustParse is ParseTimeOfDay for literals.
func MustParse(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type Event struct {
	Name   string
	Arabic string
	At     TimeOfDay
}

type EventStatus struct {
	Event
	IsActive bool
	IsNext   bool
}

// Status is the result of one evaluation. Active is -1 before the first
// event of the day.
type Status struct {
	Events    []EventStatus
	Active    int
	Next      int
	Countdown time.Duration
}

func (s Status) ActiveEvent() (Event, bool) {
	if s.Active < 0 || s.Active >= len(s.Events) {
		return Event{}, false
	}
	return s.Events[s.Active].Event, true
}

func (s Status) NextEvent() Event {
	if s.Next < 0 || s.Next >= len(s.Events) {
		return Event{}
	}
	return s.Events[s.Next].Event
}

// Evaluate finds the active and next events for now. Events must be in
// chronological order; see Validate.
func Evaluate(events []Event, now time.Time) Status {
	st := Status{Active: -1, Next: -1}
	if len(events) == 0 {
		return st
	}

	st.Events = make([]EventStatus, len(events))
	for i, e := range events {
		st.Events[i] = EventStatus{Event: e}
	}

	nowSecs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	last := len(events) - 1

	for i, e := range events {
		start := e.At.Seconds()
		if i == last {
			// The last event stays active until midnight; the small hours
			// before the first event belong to no event.
			if nowSecs >= start {
				st.Active, st.Next = i, 0
			}
			break
		}
		if nowSecs >= start && nowSecs < events[i+1].At.Seconds() {
			st.Active, st.Next = i, i+1
			break
		}
	}
	if st.Active < 0 {
		st.Next = 0
	}

	if st.Active >= 0 {
		st.Events[st.Active].IsActive = true
	}
	st.Events[st.Next].IsNext = true

	diff := events[st.Next].At.Seconds() - nowSecs
	if diff <= 0 {
		diff += secondsPerDay
	}
	st.Countdown = time.Duration(diff) * time.Second
	return st
}

// FormatCountdown renders d as "2h 5m 30s", "5m 30s" or "30s". A zero
// seconds unit is dropped when a larger unit is shown: "5h 11m", "2h 0m".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	switch {
	case h > 0 && s == 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0 && s == 0:
		return fmt.Sprintf("%dm", m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// Validate checks the preconditions Evaluate relies on.
func Validate(events []Event) error {
	if len(events) < 2 {
		return ErrTooFewEvents
	}
	seen := make(map[string]bool, len(events))
	for i, e := range events {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("event %d: %w", i, ErrEmptyName)
		}
		if seen[e.Name] {
			return fmt.Errorf("%q: %w", e.Name, ErrDuplicate)
		}
		seen[e.Name] = true
		if i > 0 && e.At.Seconds() <= events[i-1].At.Seconds() {
			return fmt.Errorf("%s at %s after %s at %s: %w",
				e.Name, e.At, events[i-1].Name, events[i-1].At, ErrUnsorted)
		}
	}
	return nil
}

// Default returns the five daily prayers.
func Default() []Event {
	return []Event{
		{Name: "Fajr", Arabic: "الفجر", At: MustParse("04:41")},
		{Name: "Dhuhr", Arabic: "الظهر", At: MustParse("12:54")},
		{Name: "Asr", Arabic: "العصر", At: MustParse("15:14")},
		{Name: "Maghrib", Arabic: "المغرب", At: MustParse("18:02")},
		{Name: "Isha", Arabic: "العشاء", At: MustParse("19:11")},
	}
}

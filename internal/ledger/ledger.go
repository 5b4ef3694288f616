// Package ledger keeps per-day counter progress, streaks and lifetime totals.
//
// Every operation is a pure function over State: it returns a new State and
// never modifies the one it was given, so the host may call CheckRollover as
// often as it likes.
package ledger

import (
	"errors"
	"math"
	"time"
)

// DateLayout is the calendar-date key format used for checkpoints and history.
const DateLayout = "2006-01-02"

// CurrentVersion is the record version written by this package.
const CurrentVersion = 1

var (
	ErrUnknownCounter = errors.New("unknown counter")
	ErrInvalidTarget  = errors.New("target must be positive")
)

// Definition is one entry of the static counter catalog.
type Definition struct {
	ID     string `json:"id" mapstructure:"id"`
	Name   string `json:"name" mapstructure:"name"`
	Arabic string `json:"arabic,omitempty" mapstructure:"arabic"`
	Target int    `json:"target" mapstructure:"target"`
}

type Counter struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Arabic             string `json:"arabic,omitempty"`
	Target             int    `json:"target"`
	Current            int    `json:"current"`
	AllTimeCount       int    `json:"all_time_count"`
	Streak             int    `json:"streak"`
	TotalCompletedDays int    `json:"total_completed_days"`
	LastCompletedDate  string `json:"last_completed_date,omitempty"`
}

// Completed reports whether today's target has been reached.
func (c Counter) Completed() bool {
	return c.Current >= c.Target
}

type State struct {
	Version       int            `json:"version"`
	Counters      []Counter      `json:"counters"`
	History       map[string]int `json:"history"`
	LastResetDate string         `json:"last_reset_date,omitempty"`
	FirstUseDate  string         `json:"first_use_date,omitempty"`
}

// Cue tells the host that an increment crossed a threshold worth signalling.
type Cue int

const (
	CueNone Cue = iota
	CueMilestone
	CueComplete
)

func (c Cue) String() string {
	switch c {
	case CueMilestone:
		return "milestone"
	case CueComplete:
		return "complete"
	}
	return "none"
}

// New builds a fresh state for the catalog.
func New(defs []Definition) State {
	s := State{
		Version:  CurrentVersion,
		Counters: make([]Counter, 0, len(defs)),
		History:  map[string]int{},
	}
	for _, d := range defs {
		s.Counters = append(s.Counters, Counter{
			ID:     d.ID,
			Name:   d.Name,
			Arabic: d.Arabic,
			Target: d.Target,
		})
	}
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Counters = append([]Counter(nil), s.Counters...)
	out.History = make(map[string]int, len(s.History))
	for k, v := range s.History {
		out.History[k] = v
	}
	return out
}

// Counter looks up a counter by id.
func (s State) Counter(id string) (Counter, bool) {
	if i := s.index(id); i >= 0 {
		return s.Counters[i], true
	}
	return Counter{}, false
}

func (s State) index(id string) int {
	for i := range s.Counters {
		if s.Counters[i].ID == id {
			return i
		}
	}
	return -1
}

// Increment adds one to a counter's daily and lifetime counts. The lifetime
// count is kept current here and is never folded again at rollover.
func Increment(s State, id string) (State, Cue, error) {
	i := s.index(id)
	if i < 0 {
		return s, CueNone, ErrUnknownCounter
	}
	out := s.Clone()
	c := &out.Counters[i]
	c.Current++
	c.AllTimeCount++

	cue := CueNone
	switch {
	case c.Current == c.Target:
		cue = CueComplete
	case c.Current%10 == 0:
		cue = CueMilestone
	}
	return out, cue, nil
}

// CheckRollover archives the day recorded in LastResetDate once the calendar
// date has moved on. It reports whether the state changed. A date earlier
// than the checkpoint (clock set back) is ignored until the calendar catches up.
func CheckRollover(s State, today time.Time) (State, bool) {
	key := DayKey(today)
	if s.LastResetDate != "" && key <= s.LastResetDate {
		return s, false
	}

	out := s.Clone()
	if out.FirstUseDate == "" {
		out.FirstUseDate = key
	}
	if out.LastResetDate == "" {
		out.LastResetDate = key
		return out, true
	}

	ending := out.LastResetDate
	dayBefore := PrevDay(ending)
	total := 0
	for i := range out.Counters {
		c := &out.Counters[i]
		total += c.Current
		completed := c.Completed()

		switch {
		case !completed:
			c.Streak = 0
		case c.LastCompletedDate == dayBefore && dayBefore != "":
			c.Streak++
		case c.LastCompletedDate == ending:
			// Already counted for this day.
		default:
			c.Streak = 1
		}

		if completed && c.LastCompletedDate != ending {
			c.TotalCompletedDays++
			c.LastCompletedDate = ending
		}
		c.Current = 0
	}
	out.History[ending] = total

	// Whole days went by unopened, so no counter was completed yesterday.
	if last, ok := ParseDay(ending); ok && DaysBetween(last, today) > 1 {
		for i := range out.Counters {
			out.Counters[i].Streak = 0
		}
	}
	out.LastResetDate = key
	return out, true
}

// ResetCounter zeroes one counter's daily count. Lifetime figures are kept.
func ResetCounter(s State, id string) (State, error) {
	i := s.index(id)
	if i < 0 {
		return s, ErrUnknownCounter
	}
	out := s.Clone()
	out.Counters[i].Current = 0
	return out, nil
}

// SetTarget changes a counter's daily goal.
func SetTarget(s State, id string, target int) (State, error) {
	if target <= 0 {
		return s, ErrInvalidTarget
	}
	i := s.index(id)
	if i < 0 {
		return s, ErrUnknownCounter
	}
	out := s.Clone()
	out.Counters[i].Target = target
	return out, nil
}

// FullReset erases all progress, statistics, history and checkpoints.
func FullReset(s State) State {
	out := s.Clone()
	for i := range out.Counters {
		c := &out.Counters[i]
		c.Current = 0
		c.AllTimeCount = 0
		c.Streak = 0
		c.TotalCompletedDays = 0
		c.LastCompletedDate = ""
	}
	out.History = map[string]int{}
	out.LastResetDate = ""
	out.FirstUseDate = ""
	return out
}

type Stats struct {
	TotalToday     int `json:"total_today"`
	CompletedToday int `json:"completed_today"`
	Counters       int `json:"counters"`
	CurrentStreak  int `json:"current_streak"`
	TotalAllTime   int `json:"total_all_time"`
	AverageDaily   int `json:"average_daily"`
}

// ComputeStats summarises s as of today. The set-wide streak is the smallest
// streak among counters, counting a counter not yet completed today as 0.
func ComputeStats(s State, today time.Time) Stats {
	st := Stats{Counters: len(s.Counters)}
	minStreak := math.MaxInt
	for _, c := range s.Counters {
		st.TotalToday += c.Current
		st.TotalAllTime += c.AllTimeCount
		streak := 0
		if c.Completed() {
			st.CompletedToday++
			streak = c.Streak
		}
		minStreak = min(minStreak, streak)
	}
	if len(s.Counters) > 0 {
		st.CurrentStreak = minStreak
	}

	days := 1
	if first, ok := ParseDay(s.FirstUseDate); ok {
		days = DaysBetween(first, today) + 1
	}
	days = max(1, days)
	st.AverageDaily = int(math.Round(float64(st.TotalAllTime) / float64(days)))
	return st
}

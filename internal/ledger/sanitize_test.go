package ledger

import (
	"testing"
	"time"
)

func TestSanitizeClampsCorruptValues(t *testing.T) {
	persisted := State{
		Counters: []Counter{
			{ID: "1", Target: -4, Current: -3, AllTimeCount: -10, Streak: -1, TotalCompletedDays: -2, LastCompletedDate: "yesterday"},
			{ID: "2", Target: 50, Current: 20, AllTimeCount: 5, Streak: 3, LastCompletedDate: "2025-03-09"},
		},
		History:       map[string]int{"2025-03-09": 40, "bogus": 3, "2025-03-08": -1},
		LastResetDate: "not a date",
		FirstUseDate:  "2025-03-01",
	}

	s := Sanitize(persisted, testCatalog())

	c1 := mustCounter(t, s, "1")
	if c1.Target != 33 {
		t.Fatalf("non-positive target should fall back to catalog, got %d", c1.Target)
	}
	if c1.Current != 0 || c1.AllTimeCount != 0 || c1.Streak != 0 || c1.TotalCompletedDays != 0 {
		t.Fatalf("negative values not clamped: %+v", c1)
	}
	if c1.LastCompletedDate != "" {
		t.Fatalf("bad date kept: %q", c1.LastCompletedDate)
	}

	c2 := mustCounter(t, s, "2")
	if c2.Target != 50 {
		t.Fatalf("persisted target lost: %d", c2.Target)
	}
	if c2.AllTimeCount != 20 {
		t.Fatalf("allTimeCount should be raised to current, got %d", c2.AllTimeCount)
	}
	if c2.LastCompletedDate != "2025-03-09" || c2.Streak != 3 {
		t.Fatalf("valid fields dropped: %+v", c2)
	}

	if len(s.History) != 1 || s.History["2025-03-09"] != 40 {
		t.Fatalf("history = %v", s.History)
	}
	if s.LastResetDate != "" {
		t.Fatalf("bad checkpoint kept: %q", s.LastResetDate)
	}
	if s.FirstUseDate != "2025-03-01" {
		t.Fatalf("first use = %q", s.FirstUseDate)
	}
	if s.Version != CurrentVersion {
		t.Fatalf("version = %d", s.Version)
	}
}

func TestSanitizeFollowsCatalog(t *testing.T) {
	persisted := State{
		Counters: []Counter{
			{ID: "3", Target: 100, Current: 7, AllTimeCount: 7},
			{ID: "gone", Target: 10, Current: 2, AllTimeCount: 2},
			{ID: "1", Target: 33, Current: 1, AllTimeCount: 1},
			{ID: "1", Target: 33, Current: 99, AllTimeCount: 99},
		},
	}
	s := Sanitize(persisted, testCatalog())

	if len(s.Counters) != 3 {
		t.Fatalf("got %d counters, want 3", len(s.Counters))
	}
	ids := []string{s.Counters[0].ID, s.Counters[1].ID, s.Counters[2].ID}
	if ids[0] != "1" || ids[1] != "2" || ids[2] != "3" {
		t.Fatalf("order = %v, want catalog order", ids)
	}
	if mustCounter(t, s, "1").Current != 1 {
		t.Fatal("first occurrence of a duplicated id should win")
	}
	if mustCounter(t, s, "3").Current != 7 {
		t.Fatal("progress not carried over")
	}
	if _, ok := s.Counter("gone"); ok {
		t.Fatal("counters missing from the catalog should be dropped")
	}
	if s.History == nil {
		t.Fatal("history map should be initialised")
	}
}

func TestSanitizeEmpty(t *testing.T) {
	s := Sanitize(State{}, testCatalog())
	if len(s.Counters) != 3 {
		t.Fatal("catalog counters missing")
	}
	for _, c := range s.Counters {
		if c.Current != 0 || c.AllTimeCount != 0 {
			t.Fatalf("fresh counter not zero: %+v", c)
		}
	}
}

// ============================================================
// Dates
// ============================================================

func TestPrevDay(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2025-03-01", "2025-02-28"},
		{"2024-03-01", "2024-02-29"},
		{"2025-01-01", "2024-12-31"},
		{"garbage", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PrevDay(tt.in); got != tt.want {
			t.Errorf("PrevDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 3 {
		t.Fatalf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Fatalf("DaysBetween reversed = %d, want -3", got)
	}
}

func TestDayKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	utc := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)
	if DayKey(utc) != "2025-03-01" {
		t.Fatal("utc key wrong")
	}
	if DayKey(utc.In(loc)) != "2025-03-02" {
		t.Fatal("local calendar date should be used")
	}
}

package schedule

import (
	"errors"
	"testing"
	"time"
)

func at(h, m, s int) time.Time {
	return time.Date(2025, 3, 14, h, m, s, 0, time.UTC)
}

// ============================================================
// Evaluate
// ============================================================

func TestEvaluateWraparoundAfterLastEvent(t *testing.T) {
	st := Evaluate(Default(), at(23, 30, 0))

	active, ok := st.ActiveEvent()
	if !ok || active.Name != "Isha" {
		t.Fatalf("active = %+v (ok=%v), want Isha", active, ok)
	}
	if st.NextEvent().Name != "Fajr" {
		t.Fatalf("next = %s, want Fajr", st.NextEvent().Name)
	}
	if st.Countdown != 5*time.Hour+11*time.Minute {
		t.Fatalf("countdown = %v, want 5h11m", st.Countdown)
	}
	if got := FormatCountdown(st.Countdown); got != "5h 11m" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestEvaluateBoundaryIsClosedOpen(t *testing.T) {
	st := Evaluate(Default(), at(12, 54, 0))
	active, ok := st.ActiveEvent()
	if !ok || active.Name != "Dhuhr" {
		t.Fatalf("active = %+v, want Dhuhr", active)
	}
	if st.NextEvent().Name != "Asr" {
		t.Fatalf("next = %s, want Asr", st.NextEvent().Name)
	}

	st = Evaluate(Default(), at(12, 53, 59))
	active, _ = st.ActiveEvent()
	if active.Name != "Fajr" {
		t.Fatalf("one second before Dhuhr: active = %s, want Fajr", active.Name)
	}
	if st.Countdown != time.Second {
		t.Fatalf("countdown = %v, want 1s", st.Countdown)
	}
}

func TestEvaluateBeforeFirstEvent(t *testing.T) {
	st := Evaluate(Default(), at(2, 0, 0))
	if active, ok := st.ActiveEvent(); ok {
		t.Fatalf("active = %s, want none before Fajr", active.Name)
	}
	if st.Active != -1 {
		t.Fatalf("Active = %d, want -1", st.Active)
	}
	if st.NextEvent().Name != "Fajr" {
		t.Fatalf("next = %s, want Fajr", st.NextEvent().Name)
	}
	if st.Countdown != 2*time.Hour+41*time.Minute {
		t.Fatalf("countdown = %v, want 2h41m", st.Countdown)
	}
}

func TestEvaluateMidnight(t *testing.T) {
	st := Evaluate(Default(), at(0, 0, 0))
	if _, ok := st.ActiveEvent(); ok {
		t.Fatal("no event should be active at midnight")
	}
	if st.Countdown != 4*time.Hour+41*time.Minute {
		t.Fatalf("countdown = %v", st.Countdown)
	}

	st = Evaluate(Default(), at(23, 59, 59))
	active, _ := st.ActiveEvent()
	if active.Name != "Isha" {
		t.Fatalf("active = %s, want Isha", active.Name)
	}
}

func TestEvaluateExactlyAtFirstEvent(t *testing.T) {
	st := Evaluate(Default(), at(4, 41, 0))
	active, _ := st.ActiveEvent()
	if active.Name != "Fajr" {
		t.Fatalf("active = %s, want Fajr", active.Name)
	}
	if st.NextEvent().Name != "Dhuhr" {
		t.Fatalf("next = %s", st.NextEvent().Name)
	}
}

func TestEvaluateExactlyOneActiveAndNext(t *testing.T) {
	events := Default()
	for secs := 0; secs < secondsPerDay; secs += 97 {
		now := at(0, 0, 0).Add(time.Duration(secs) * time.Second)
		st := Evaluate(events, now)

		active, next := 0, 0
		for _, e := range st.Events {
			if e.IsActive {
				active++
			}
			if e.IsNext {
				next++
			}
		}
		if active > 1 || next != 1 {
			t.Fatalf("at %s: %d active, %d next", now.Format("15:04:05"), active, next)
		}
		if secs >= Default()[0].At.Seconds() && active != 1 {
			t.Fatalf("at %s: %d active, %d next", now.Format("15:04:05"), active, next)
		}
		if st.Countdown <= 0 || st.Countdown > 24*time.Hour {
			t.Fatalf("at %s: countdown %v out of range", now.Format("15:04:05"), st.Countdown)
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	now := at(16, 0, 5)
	a := Evaluate(Default(), now)
	b := Evaluate(Default(), now)
	if a.Active != b.Active || a.Next != b.Next || a.Countdown != b.Countdown {
		t.Fatalf("repeated evaluation differs: %+v vs %+v", a, b)
	}
}

func TestEvaluateUsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	// 10:00 UTC is 13:00 in UTC+3, which falls after Dhuhr.
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC).In(loc)
	active, _ := Evaluate(Default(), now).ActiveEvent()
	if active.Name != "Dhuhr" {
		t.Fatalf("active = %s, want Dhuhr", active.Name)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	st := Evaluate(nil, at(12, 0, 0))
	if _, ok := st.ActiveEvent(); ok {
		t.Fatal("empty schedule should have no active event")
	}
	if st.Next != -1 {
		t.Fatalf("next = %d, want -1", st.Next)
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	events := Default()
	Evaluate(events, at(13, 0, 0))
	if events[1].Name != "Dhuhr" || events[1].At != MustParse("12:54") {
		t.Fatal("input slice was modified")
	}
}

// ============================================================
// FormatCountdown
// ============================================================

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
		{5 * time.Minute, "5m"},
		{2*time.Hour + 5*time.Minute + 30*time.Second, "2h 5m 30s"},
		{2 * time.Hour, "2h 0m"},
		{2*time.Hour + 30*time.Second, "2h 0m 30s"},
		{5*time.Hour + 11*time.Minute, "5h 11m"},
		{-time.Minute, "0s"},
	}
	for _, tt := range tests {
		if got := FormatCountdown(tt.d); got != tt.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// ============================================================
// TimeOfDay / Validate
// ============================================================

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"04:41", TimeOfDay{4, 41}, false},
		{" 19:11 ", TimeOfDay{19, 11}, false},
		{"0:05", TimeOfDay{0, 5}, false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"1200", TimeOfDay{}, true},
		{"ab:cd", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeOfDay(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := MustParse("4:05").String(); s != "04:05" {
		t.Fatalf("String() = %q", s)
	}
	if secs := MustParse("01:01").Seconds(); secs != 3660 {
		t.Fatalf("Seconds() = %d", secs)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default schedule invalid: %v", err)
	}

	one := Default()[:1]
	if err := Validate(one); !errors.Is(err, ErrTooFewEvents) {
		t.Fatalf("err = %v, want ErrTooFewEvents", err)
	}

	unsorted := Default()
	unsorted[1], unsorted[2] = unsorted[2], unsorted[1]
	if err := Validate(unsorted); !errors.Is(err, ErrUnsorted) {
		t.Fatalf("err = %v, want ErrUnsorted", err)
	}

	dup := Default()
	dup[2].Name = "Dhuhr"
	if err := Validate(dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	empty := Default()
	empty[0].Name = " "
	if err := Validate(empty); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
}

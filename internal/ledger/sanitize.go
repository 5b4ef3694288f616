package ledger

// Sanitize reconciles a persisted state with the catalog. The catalog decides
// which counters exist and in what order; persisted progress is carried over
// with impossible values clamped rather than trusted.
func Sanitize(s State, defs []Definition) State {
	byID := make(map[string]Counter, len(s.Counters))
	for _, c := range s.Counters {
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = c
		}
	}

	out := New(defs)
	for i := range out.Counters {
		c := &out.Counters[i]
		prev, ok := byID[c.ID]
		if !ok {
			continue
		}
		if prev.Target > 0 {
			c.Target = prev.Target
		}
		c.Current = max(0, prev.Current)
		c.AllTimeCount = max(c.Current, prev.AllTimeCount)
		c.Streak = max(0, prev.Streak)
		c.TotalCompletedDays = max(0, prev.TotalCompletedDays)
		if _, ok := ParseDay(prev.LastCompletedDate); ok {
			c.LastCompletedDate = prev.LastCompletedDate
		}
	}

	for k, v := range s.History {
		if _, ok := ParseDay(k); ok && v >= 0 {
			out.History[k] = v
		}
	}
	if _, ok := ParseDay(s.LastResetDate); ok {
		out.LastResetDate = s.LastResetDate
	}
	if _, ok := ParseDay(s.FirstUseDate); ok {
		out.FirstUseDate = s.FirstUseDate
	}
	return out
}

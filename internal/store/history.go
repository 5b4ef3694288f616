package store

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/deen/internal/ledger"
)

// DailyHistory returns archived day totals in [from, to), oldest first. A zero
// bound leaves that side open.
func (s *Store) DailyHistory(from, to time.Time) ([]HistoryEntry, error) {
	query := `SELECT date, total FROM daily_history WHERE 1=1`
	var args []any
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, ledger.DayKey(from))
	}
	if !to.IsZero() {
		query += ` AND date < ?`
		args = append(args, ledger.DayKey(to))
	}
	query += ` ORDER BY date`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.Date, &h.Total); err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

// HistoryFromState flattens a ledger's history map into date order.
func HistoryFromState(st ledger.State, from, to time.Time) []HistoryEntry {
	var entries []HistoryEntry
	for date, total := range st.History {
		if !from.IsZero() && date < ledger.DayKey(from) {
			continue
		}
		if !to.IsZero() && date >= ledger.DayKey(to) {
			continue
		}
		entries = append(entries, HistoryEntry{Date: date, Total: total})
	}
	sortHistory(entries)
	return entries
}

func sortHistory(entries []HistoryEntry) {
	slices.SortFunc(entries, func(a, b HistoryEntry) int { return strings.Compare(a.Date, b.Date) })
}

package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/deen/internal/ledger"
)

// LoadLedger reads the persisted ledger. It returns nil when nothing has been
// saved yet.
func (s *Store) LoadLedger() (*ledger.State, error) {
	rows, err := s.db.Query(
		`SELECT id, name, arabic, target, current, all_time_count, streak, total_completed_days, last_completed_date
		 FROM counters ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list counters: %w", err)
	}
	defer rows.Close()

	st := ledger.State{History: map[string]int{}}
	for rows.Next() {
		var c ledger.Counter
		if err := rows.Scan(&c.ID, &c.Name, &c.Arabic, &c.Target, &c.Current,
			&c.AllTimeCount, &c.Streak, &c.TotalCompletedDays, &c.LastCompletedDate); err != nil {
			return nil, fmt.Errorf("scan counter: %w", err)
		}
		st.Counters = append(st.Counters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	history, err := s.DailyHistory(time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		st.History[h.Date] = h.Total
	}

	if st.LastResetDate, err = s.GetSettingOr(KeyLastResetDate, ""); err != nil {
		return nil, err
	}
	if st.FirstUseDate, err = s.GetSettingOr(KeyFirstUseDate, ""); err != nil {
		return nil, err
	}
	v, err := s.GetSettingOr(KeyLedgerVersion, "")
	if err != nil {
		return nil, err
	}
	st.Version, _ = strconv.Atoi(v)

	if len(st.Counters) == 0 && len(st.History) == 0 && st.LastResetDate == "" {
		return nil, nil
	}
	return &st, nil
}

// SaveLedger replaces the persisted ledger with st in one transaction.
func (s *Store) SaveLedger(st ledger.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM counters`); err != nil {
		return fmt.Errorf("clear counters: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for i, c := range st.Counters {
		_, err := tx.Exec(
			`INSERT INTO counters (id, position, name, arabic, target, current, all_time_count, streak, total_completed_days, last_completed_date, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, i, c.Name, c.Arabic, c.Target, c.Current, c.AllTimeCount, c.Streak, c.TotalCompletedDays, c.LastCompletedDate, now,
		)
		if err != nil {
			return fmt.Errorf("save counter %s: %w", c.ID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM daily_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	for date, total := range st.History {
		if _, err := tx.Exec(`INSERT INTO daily_history (date, total) VALUES (?, ?)`, date, total); err != nil {
			return fmt.Errorf("save history %s: %w", date, err)
		}
	}

	if err := setSetting(tx, KeyLastResetDate, st.LastResetDate); err != nil {
		return err
	}
	if err := setSetting(tx, KeyFirstUseDate, st.FirstUseDate); err != nil {
		return err
	}
	if err := setSetting(tx, KeyLedgerVersion, strconv.Itoa(st.Version)); err != nil {
		return err
	}
	return tx.Commit()
}

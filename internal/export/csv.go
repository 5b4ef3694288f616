package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
)

var csvHeader = []string{"Kind", "Key", "Name", "Target", "Count", "All Time", "Streak", "Completed Days", "Last Completed"}

// ToCSV writes one row per counter followed by one row per archived day.
// Day rows only fill Kind, Key (the date) and Count.
func ToCSV(counters []ledger.Counter, history []store.HistoryEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, c := range counters {
		row := []string{
			"counter",
			c.ID,
			c.Name,
			strconv.Itoa(c.Target),
			strconv.Itoa(c.Current),
			strconv.Itoa(c.AllTimeCount),
			strconv.Itoa(c.Streak),
			strconv.Itoa(c.TotalCompletedDays),
			c.LastCompletedDate,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, h := range sorted(history) {
		row := []string{"day", h.Date, "", "", strconv.Itoa(h.Total), "", "", "", ""}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

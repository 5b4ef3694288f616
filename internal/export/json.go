package export

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
)

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	Counters   []ledger.Counter `json:"counters"`
	History    []jsonDay        `json:"history"`
	Days       int              `json:"days"`
	Total      int              `json:"total"`
}

type jsonDay struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

func ToJSON(counters []ledger.Counter, history []store.HistoryEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Counters:   counters,
	}
	for _, h := range sorted(history) {
		export.History = append(export.History, jsonDay{Date: h.Date, Total: h.Total})
		export.Total += h.Total
	}
	export.Days = len(export.History)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func sorted(history []store.HistoryEntry) []store.HistoryEntry {
	out := slices.Clone(history)
	slices.SortFunc(out, func(a, b store.HistoryEntry) int { return strings.Compare(a.Date, b.Date) })
	return out
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
)

func sampleData() ([]ledger.Counter, []store.HistoryEntry) {
	counters := []ledger.Counter{
		{ID: "1", Name: "Subhanallah", Target: 33, Current: 33, AllTimeCount: 99, Streak: 3, TotalCompletedDays: 3, LastCompletedDate: "2024-03-09"},
		{ID: "4", Name: "La ilaha illallah", Target: 100, Current: 7, AllTimeCount: 7},
	}
	// Deliberately out of order.
	history := []store.HistoryEntry{
		{Date: "2024-03-09", Total: 40},
		{Date: "2024-03-07", Total: 33},
		{Date: "2024-03-08", Total: 66},
	}
	return counters, history
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	counters, history := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(counters, history, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	records := readCSV(t, path)

	// header + 2 counters + 3 days
	if len(records) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(records))
	}
	if records[0][0] != "Kind" || records[0][4] != "Count" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	c := records[1]
	if c[0] != "counter" || c[1] != "1" || c[2] != "Subhanallah" || c[3] != "33" || c[5] != "99" || c[8] != "2024-03-09" {
		t.Fatalf("unexpected counter row: %v", c)
	}

	var dates []string
	for _, r := range records[3:] {
		if r[0] != "day" {
			t.Fatalf("expected day row, got %v", r)
		}
		dates = append(dates, r[1])
	}
	if strings.Join(dates, ",") != "2024-03-07,2024-03-08,2024-03-09" {
		t.Fatalf("history not date-sorted: %v", dates)
	}
	if records[3][4] != "33" {
		t.Fatalf("expected first day total 33, got %s", records[3][4])
	}
}

func TestToCSVDoesNotReorderInput(t *testing.T) {
	counters, history := sampleData()
	ToCSV(counters, history, filepath.Join(t.TempDir(), "x.csv"))
	if history[0].Date != "2024-03-09" {
		t.Fatal("caller's slice should be left alone")
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	counters := []ledger.Counter{{ID: "x", Name: `Dhikr "special", with commas`, Target: 1}}
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := ToCSV(counters, nil, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][2] != `Dhikr "special", with commas` {
		t.Fatalf("name mangled: %q", records[1][2])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	counters, history := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(counters, history, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(result.Counters) != 2 || result.Counters[0] != counters[0] {
		t.Fatalf("unexpected counters: %+v", result.Counters)
	}
	if result.Days != 3 || result.Total != 139 {
		t.Fatalf("days=%d total=%d, want 3 and 139", result.Days, result.Total)
	}
	if result.History[0].Date != "2024-03-07" || result.History[2].Date != "2024-03-09" {
		t.Fatalf("history not date-sorted: %+v", result.History)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Days != 0 || result.Total != 0 {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if result.History != nil {
		t.Fatal("history should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

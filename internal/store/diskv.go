package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/sadopc/deen/internal/ledger"
)

const (
	diskKeyCounters   = "counters"
	diskKeyCheckpoint = "checkpoint"
	diskKeyHistory    = "history"
)

type checkpoint struct {
	Version       int    `json:"version"`
	LastResetDate string `json:"last_reset_date"`
	FirstUseDate  string `json:"first_use_date"`
}

// DiskStore keeps the ledger as three JSON documents in a diskv directory.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens (or creates) a diskv store rooted at basePath.
func NewDisk(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// DefaultDiskPath returns ~/.config/deen/ledger
func DefaultDiskPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "deen", "ledger"), nil
}

func (s *DiskStore) Close() error { return nil }

// readJSON decodes key into v. Missing and undecodable blobs both report
// false.
func (s *DiskStore) readJSON(key string, v any) bool {
	if !s.d.Has(key) {
		return false
	}
	b, err := s.d.Read(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

func (s *DiskStore) writeJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) LoadLedger() (*ledger.State, error) {
	var (
		counters []ledger.Counter
		cp       checkpoint
		history  map[string]int
	)
	hasCounters := s.readJSON(diskKeyCounters, &counters)
	hasCheckpoint := s.readJSON(diskKeyCheckpoint, &cp)
	hasHistory := s.readJSON(diskKeyHistory, &history)
	if !hasCounters && !hasCheckpoint && !hasHistory {
		return nil, nil
	}
	if history == nil {
		history = map[string]int{}
	}
	return &ledger.State{
		Version:       cp.Version,
		Counters:      counters,
		History:       history,
		LastResetDate: cp.LastResetDate,
		FirstUseDate:  cp.FirstUseDate,
	}, nil
}

// SaveLedger writes history and counters before the checkpoint so an
// interrupted save never advances the checkpoint past unarchived data.
func (s *DiskStore) SaveLedger(st ledger.State) error {
	history := st.History
	if history == nil {
		history = map[string]int{}
	}
	if err := s.writeJSON(diskKeyHistory, history); err != nil {
		return err
	}
	counters := st.Counters
	if counters == nil {
		counters = []ledger.Counter{}
	}
	if err := s.writeJSON(diskKeyCounters, counters); err != nil {
		return err
	}
	return s.writeJSON(diskKeyCheckpoint, checkpoint{
		Version:       st.Version,
		LastResetDate: st.LastResetDate,
		FirstUseDate:  st.FirstUseDate,
	})
}

func (s *DiskStore) DailyHistory(from, to time.Time) ([]HistoryEntry, error) {
	st, err := s.LoadLedger()
	if err != nil || st == nil {
		return nil, err
	}
	return HistoryFromState(*st, from, to), nil
}

// Erase removes every stored document.
func (s *DiskStore) Erase() error {
	return s.d.EraseAll()
}

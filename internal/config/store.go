package config

import (
	"time"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/store"
)

// Store is what the app needs from either persistence backend.
type Store interface {
	LoadLedger() (*ledger.State, error)
	SaveLedger(ledger.State) error
	DailyHistory(from, to time.Time) ([]store.HistoryEntry, error)
	Close() error
}

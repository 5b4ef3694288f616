package store

// Setting keys holding the ledger checkpoints.
const (
	KeyLastResetDate = "last_reset_date"
	KeyFirstUseDate  = "first_use_date"
	KeyLedgerVersion = "ledger_version"
)

type Setting struct {
	Key   string
	Value string
}

// HistoryEntry is one archived day: the sum of all counters on Date.
type HistoryEntry struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

package types

// LedgerTimeLayout is the timestamp layout of ledger entries.
const LedgerTimeLayout = "2006-01-02 15:04:05"

// LedgerEntry is one audit record. Entries are never edited or removed.
type LedgerEntry struct {
	Timestamp string `json:"timestamp"`
	Org       Org    `json:"org"`
	Action    string `json:"action"`
	TxHash    string `json:"txHash"`
}

// Ledger actions recorded by the console.
const (
	ActionModelUpdateSubmitted = "Model Update Submitted"
	ActionIdentityRegistered   = "Identity Registered"
	ActionAggregationCompleted = "Aggregation Completed"
)

package types

import "time"

// Request is a simulated backend call.
type Request struct {
	Operation Operation
	Delay     time.Duration
	// Model seeds trigger-aggregation; nil uses the default model.
	Model *GlobalModel
}

// Response is the union of all canned responses. Only the fields of the
// requested operation are set.
type Response struct {
	Success     bool         `json:"success"`
	Certificate *Certificate `json:"certificate,omitempty"`
	TxHash      string       `json:"txHash,omitempty"`
	BlockNumber int          `json:"blockNumber,omitempty"`
	Status      string       `json:"status,omitempty"`
	JobID       string       `json:"jobId,omitempty"`
	NewModel    *GlobalModel `json:"newModel,omitempty"`
}

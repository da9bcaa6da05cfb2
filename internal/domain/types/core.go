package types

// Org names an organisation taking part in the federation.
type Org string

// String returns the string form of the organisation name.
func (o Org) String() string { return string(o) }

// Operation names a simulated backend call.
type Operation string

// String returns the string form of the operation name.
func (op Operation) String() string { return string(op) }

// Simulated backend operations with canned responses.
const (
	OpGenerateCert       Operation = "generate-cert"
	OpRegisterBlockchain Operation = "register-blockchain"
	OpStartTraining      Operation = "start-training"
	OpTriggerAggregation Operation = "trigger-aggregation"
	OpDownloadModel      Operation = "download-model"
)

package types

// Participant is a member organisation of the federation.
type Participant struct {
	ID          int    `json:"id"`
	Name        Org    `json:"name"`
	Initials    string `json:"initials"`
	DatasetSize int    `json:"datasetSize"`
	Status      string `json:"status"`
}

// GlobalModel describes the current aggregated model.
type GlobalModel struct {
	Version    string  `json:"version"`
	Accuracy   float64 `json:"accuracy"`
	Rounds     int     `json:"rounds"`
	LastUpdate string  `json:"lastUpdate"`
}

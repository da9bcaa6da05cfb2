package types

// DefaultParticipants returns the static federation roster.
func DefaultParticipants() []Participant {
	return []Participant{
		{ID: 1, Name: "Company A", Initials: "CA", DatasetSize: 15000, Status: "active"},
		{ID: 2, Name: "Company B", Initials: "CB", DatasetSize: 12500, Status: "active"},
		{ID: 3, Name: "Company C", Initials: "CC", DatasetSize: 18000, Status: "active"},
	}
}

// DefaultGlobalModel returns the model every process starts from.
func DefaultGlobalModel() GlobalModel {
	return GlobalModel{
		Version:    "1.3.2",
		Accuracy:   94.7,
		Rounds:     12,
		LastUpdate: "2025-09-28",
	}
}

package types

// TrainingState tracks the simulated local training run.
type TrainingState struct {
	Progress int  `json:"progress"`
	Active   bool `json:"active"`
}

// ModalAction is an affordance offered by a modal.
type ModalAction struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// ModalContent is what a modal displays. OnClose runs once when the modal is hidden.
type ModalContent struct {
	Title   string        `json:"title"`
	Body    string        `json:"body"`
	Actions []ModalAction `json:"actions,omitempty"`
	OnClose func()        `json:"-"`
}

// ModalState is the single modal slot.
type ModalState struct {
	Visible bool          `json:"visible"`
	Content *ModalContent `json:"content"`
}

// State is an immutable snapshot of the console.
type State struct {
	User         *Session      `json:"currentUser"`
	Training     TrainingState `json:"training"`
	Participants []Participant `json:"participants"`
	Model        GlobalModel   `json:"globalModel"`
	Ledger       []LedgerEntry `json:"ledgerEntries"`
	Certificate  *Certificate  `json:"certificate"`
	Modal        ModalState    `json:"modal"`
}

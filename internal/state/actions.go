package state

import "qshield/internal/domain"

// Action is a state transition request. The set of actions is closed.
type Action interface {
	// Type returns the wire name of the action.
	Type() string
	isAction()
}

// Wire names of the actions.
const (
	TypeSetUser             = "SET_USER"
	TypeSetTrainingProgress = "SET_TRAINING_PROGRESS"
	TypeSetTrainingActive   = "SET_TRAINING_ACTIVE"
	TypeSetCertificate      = "SET_CERTIFICATE"
	TypeSetGlobalModel      = "SET_GLOBAL_MODEL"
	TypeAddLedgerEntry      = "ADD_LEDGER_ENTRY"
	TypeSetLedgerEntries    = "SET_LEDGER_ENTRIES"
	TypeShowModal           = "SHOW_MODAL"
	TypeHideModal           = "HIDE_MODAL"
	TypeLogout              = "LOGOUT"
)

// SetUser replaces the session. A nil User clears it.
type SetUser struct{ User *domain.Session }

// SetTrainingProgress replaces the progress verbatim; callers clamp.
type SetTrainingProgress struct{ Progress int }

// SetTrainingActive replaces the active flag.
type SetTrainingActive struct{ Active bool }

// SetCertificate replaces the certificate.
type SetCertificate struct{ Certificate *domain.Certificate }

// SetGlobalModel replaces the global model record.
type SetGlobalModel struct{ Model domain.GlobalModel }

// AddLedgerEntry prepends Entry to the ledger.
type AddLedgerEntry struct{ Entry domain.LedgerEntry }

// SetLedgerEntries replaces the ledger. Only used during hydration.
type SetLedgerEntries struct{ Entries []domain.LedgerEntry }

// ShowModal displays Content, replacing any visible modal.
type ShowModal struct{ Content domain.ModalContent }

// HideModal clears the modal and then runs its OnClose callback.
type HideModal struct{}

// Logout resets everything except the ledger, participants and global model.
type Logout struct{}

// unknown is what DecodeAction yields for names it does not recognise.
type unknown struct{ name string }

func (SetUser) Type() string             { return TypeSetUser }
func (SetTrainingProgress) Type() string { return TypeSetTrainingProgress }
func (SetTrainingActive) Type() string   { return TypeSetTrainingActive }
func (SetCertificate) Type() string      { return TypeSetCertificate }
func (SetGlobalModel) Type() string      { return TypeSetGlobalModel }
func (AddLedgerEntry) Type() string      { return TypeAddLedgerEntry }
func (SetLedgerEntries) Type() string    { return TypeSetLedgerEntries }
func (ShowModal) Type() string           { return TypeShowModal }
func (HideModal) Type() string           { return TypeHideModal }
func (Logout) Type() string              { return TypeLogout }
func (u unknown) Type() string           { return u.name }

func (SetUser) isAction()             {}
func (SetTrainingProgress) isAction() {}
func (SetTrainingActive) isAction()   {}
func (SetCertificate) isAction()      {}
func (SetGlobalModel) isAction()      {}
func (AddLedgerEntry) isAction()      {}
func (SetLedgerEntries) isAction()    {}
func (ShowModal) isAction()           {}
func (HideModal) isAction()           {}
func (Logout) isAction()              {}
func (unknown) isAction()             {}

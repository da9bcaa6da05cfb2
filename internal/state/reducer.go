package state

import (
	"slices"

	"qshield/internal/domain"
)

// Initial returns the state every process starts from.
func Initial() domain.State {
	return domain.State{
		Participants: domain.DefaultParticipants(),
		Model:        domain.DefaultGlobalModel(),
		Ledger:       []domain.LedgerEntry{},
	}
}

// Reduce applies a to prev and returns the next state. prev is never
// modified; unknown actions return prev unchanged.
func Reduce(prev domain.State, a Action) domain.State {
	next := prev
	switch a := a.(type) {
	case SetUser:
		next.User = clonePtr(a.User)
	case SetTrainingProgress:
		next.Training.Progress = a.Progress
	case SetTrainingActive:
		next.Training.Active = a.Active
	case SetCertificate:
		next.Certificate = clonePtr(a.Certificate)
	case SetGlobalModel:
		next.Model = a.Model
	case AddLedgerEntry:
		ledger := make([]domain.LedgerEntry, 0, len(prev.Ledger)+1)
		ledger = append(ledger, a.Entry)
		next.Ledger = append(ledger, prev.Ledger...)
	case SetLedgerEntries:
		next.Ledger = slices.Clone(a.Entries)
		if next.Ledger == nil {
			next.Ledger = []domain.LedgerEntry{}
		}
	case ShowModal:
		content := a.Content
		content.Actions = slices.Clone(a.Content.Actions)
		next.Modal = domain.ModalState{Visible: true, Content: &content}
	case HideModal:
		next.Modal = domain.ModalState{}
	case Logout:
		next = Initial()
		next.Ledger = prev.Ledger
		next.Participants = prev.Participants
		next.Model = prev.Model
	}
	return next
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package audit

import (
	"strings"

	"qshield/internal/domain"
	"qshield/internal/state"
)

// Filter returns the entries whose org, action or transaction hash contains
// term, ignoring case. Order is kept. An empty term matches everything.
func Filter(entries []domain.LedgerEntry, term string) []domain.LedgerEntry {
	term = strings.ToLower(term)
	out := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(string(e.Org)), term) ||
			strings.Contains(strings.ToLower(e.Action), term) ||
			strings.Contains(strings.ToLower(e.TxHash), term) {
			out = append(out, e)
		}
	}
	return out
}

// Service searches the live ledger.
type Service struct {
	store state.Dispatcher
}

// New returns an audit service over store.
func New(store state.Dispatcher) *Service { return &Service{store: store} }

// Search filters the current ledger by term.
func (s *Service) Search(term string) []domain.LedgerEntry {
	return Filter(s.store.Snapshot().Ledger, term)
}

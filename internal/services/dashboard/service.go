package dashboard

import (
	"qshield/internal/domain"
	"qshield/internal/state"
)

// TotalThreats is the headline threat counter. It is static.
const TotalThreats = 1247

// RecentLimit bounds the recent-activity list.
const RecentLimit = 5

// Summary is the dashboard overview.
type Summary struct {
	TotalThreats int                  `json:"totalThreats"`
	ActiveRounds int                  `json:"activeRounds"`
	Participants int                  `json:"participants"`
	Model        domain.GlobalModel   `json:"globalModel"`
	Training     domain.TrainingState `json:"training"`
	Recent       []domain.LedgerEntry `json:"recentActivity"`
}

// Service builds dashboard views.
type Service struct {
	store state.Dispatcher
}

// New returns a dashboard service.
func New(store state.Dispatcher) *Service { return &Service{store: store} }

// Summary reads the overview from the current state.
func (s *Service) Summary() Summary {
	st := s.store.Snapshot()
	return Summary{
		TotalThreats: TotalThreats,
		ActiveRounds: st.Model.Rounds,
		Participants: len(st.Participants),
		Model:        st.Model,
		Training:     st.Training,
		Recent:       st.Ledger[:min(len(st.Ledger), RecentLimit)],
	}
}

// Participants returns the federation members.
func (s *Service) Participants() []domain.Participant { return s.store.Snapshot().Participants }

// ShowSystemFlow opens the architecture overview modal.
func (s *Service) ShowSystemFlow() {
	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "System Architecture Flow",
		Body: "Participants -> Local Train -> Aggregation -> Global Model\n" +
			"PQC Identity -> Aggregation -> Blockchain\n\n" +
			"Quantum-safe collaborative threat intelligence with federated learning",
	}})
}

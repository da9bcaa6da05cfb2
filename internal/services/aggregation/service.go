package aggregation

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/state"
)

// DefaultDelay is the latency of the simulated aggregation call.
const DefaultDelay = 2500 * time.Millisecond

// HubOrg is the ledger organisation of aggregation rounds.
const HubOrg = domain.Org("Federation Hub")

// Service triggers aggregation rounds. At most one round runs at a time.
type Service struct {
	store state.Dispatcher
	sim   domain.Simulator
	gen   *backend.Generator
	clock domain.Clock
	log   *zap.Logger

	running atomic.Bool

	Delay time.Duration
}

// New returns an aggregation service with the default latency.
func New(store state.Dispatcher, sim domain.Simulator, gen *backend.Generator, clock domain.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, sim: sim, gen: gen, clock: clock, log: log, Delay: DefaultDelay}
}

// Trigger runs one round over the current global model and returns the model
// it produced. onClose, if non-nil, runs when the completion modal is
// dismissed.
func (s *Service) Trigger(ctx context.Context, onClose func()) (domain.GlobalModel, error) {
	st := s.store.Snapshot()
	if st.User == nil {
		return domain.GlobalModel{}, domain.ErrNotSignedIn
	}
	if !s.running.CompareAndSwap(false, true) {
		return domain.GlobalModel{}, domain.ErrAggregationConflict
	}
	defer s.running.Store(false)

	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Secure Aggregation",
		Body:  "Aggregating model updates from all participants...",
	}})

	cur := st.Model
	resp, err := s.sim.Call(ctx, domain.Request{
		Operation: domain.OpTriggerAggregation,
		Delay:     s.Delay,
		Model:     &cur,
	})
	if err != nil {
		s.store.Dispatch(state.HideModal{})
		return domain.GlobalModel{}, fmt.Errorf("trigger aggregation: %w", err)
	}
	model := *resp.NewModel

	s.store.Dispatch(state.SetGlobalModel{Model: model})
	s.store.Dispatch(state.AddLedgerEntry{Entry: domain.LedgerEntry{
		Timestamp: backend.LedgerTimestamp(s.clock.Now()),
		Org:       HubOrg,
		Action:    domain.ActionAggregationCompleted,
		TxHash:    s.gen.TxHash(),
	}})
	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Aggregation Complete",
		Body: fmt.Sprintf("New Version: %s\nAccuracy: %.1f%%\nRound: %d\n\nGlobal model has been updated!",
			model.Version, model.Accuracy, model.Rounds),
		Actions: []domain.ModalAction{{Label: "View Global Model", Href: "/global-model"}},
		OnClose: onClose,
	}})

	s.log.Info("aggregation complete",
		zap.String("version", model.Version),
		zap.Float64("accuracy", model.Accuracy),
		zap.Int("rounds", model.Rounds),
	)
	return model, nil
}

// Running reports whether a round is in flight.
func (s *Service) Running() bool { return s.running.Load() }

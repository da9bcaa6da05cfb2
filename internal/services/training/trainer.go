package training

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/state"
)

// Defaults of the simulated run.
const (
	DefaultInterval   = 500 * time.Millisecond
	DefaultStep       = 2
	DefaultStartDelay = 500 * time.Millisecond

	completeProgress = 100
)

// Config tunes the tick cadence.
type Config struct {
	Interval   time.Duration
	Step       int
	StartDelay time.Duration
}

// DefaultConfig returns a two-percent step every half second.
func DefaultConfig() Config {
	return Config{Interval: DefaultInterval, Step: DefaultStep, StartDelay: DefaultStartDelay}
}

type txHasher interface {
	TxHash() string
}

// Handle is one training run.
type Handle struct {
	JobID string

	cancel    context.CancelFunc
	done      chan struct{}
	finish    sync.Once
	completed atomic.Bool
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{cancel: cancel, done: make(chan struct{})}
}

// Done is closed once the run has stopped ticking, for any reason.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Completed reports whether the run reached 100%.
func (h *Handle) Completed() bool { return h.completed.Load() }

// Stop cancels the run's tick without touching state, as when the owning
// screen goes away.
func (h *Handle) Stop() { h.cancel() }

func (h *Handle) close() { h.finish.Do(func() { close(h.done) }) }

// Trainer owns the repeating tick of the current run.
type Trainer struct {
	store state.Dispatcher
	sim   domain.Simulator
	gen   txHasher
	clock domain.Clock
	cfg   Config
	log   *zap.Logger

	mu  sync.Mutex
	run *Handle
}

// New returns a Trainer. Zero fields of cfg take their defaults.
func New(
	store state.Dispatcher,
	sim domain.Simulator,
	gen txHasher,
	clock domain.Clock,
	cfg Config,
	log *zap.Logger,
) *Trainer {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.StartDelay < 0 {
		cfg.StartDelay = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Trainer{store: store, sim: sim, gen: gen, clock: clock, cfg: cfg, log: log}
}

// Start begins a run. It returns once the simulated start-training call has
// resolved and ticking has begun; the run itself outlives ctx.
func (t *Trainer) Start(ctx context.Context) (*Handle, error) {
	t.mu.Lock()
	if t.run != nil {
		t.mu.Unlock()
		return nil, domain.ErrTrainingActive
	}
	st := t.store.Snapshot()
	if st.User == nil {
		t.mu.Unlock()
		return nil, domain.ErrNotSignedIn
	}

	runCtx, cancel := context.WithCancel(context.Background())
	h := newHandle(cancel)
	t.run = h
	if st.Training.Progress >= completeProgress {
		t.store.Dispatch(state.SetTrainingProgress{Progress: 0})
	}
	t.store.Dispatch(state.SetTrainingActive{Active: true})
	t.mu.Unlock()

	callCtx, callCancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(runCtx, callCancel)
	resp, err := t.sim.Call(callCtx, domain.Request{Operation: domain.OpStartTraining, Delay: t.cfg.StartDelay})
	stopAfter()
	callCancel()

	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil && runCtx.Err() != nil {
		err = runCtx.Err()
	}
	if err != nil {
		if t.run == h {
			t.run = nil
			t.store.Dispatch(state.SetTrainingActive{Active: false})
		}
		cancel()
		h.close()
		return nil, fmt.Errorf("start training: %w", err)
	}

	h.JobID = resp.JobID
	go t.tick(runCtx, h)
	t.log.Info("training started", zap.String("jobId", h.JobID))
	return h, nil
}

// Pause stops ticking and clears the active flag. Progress is kept.
func (t *Trainer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.store.Dispatch(state.SetTrainingActive{Active: false})
}

// Reset stops ticking and returns progress to zero.
func (t *Trainer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.store.Dispatch(state.SetTrainingProgress{Progress: 0})
	t.store.Dispatch(state.SetTrainingActive{Active: false})
}

// Close stops ticking without touching state.
func (t *Trainer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Running returns the outstanding run, if any.
func (t *Trainer) Running() (*Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run, t.run != nil
}

func (t *Trainer) stopLocked() {
	if t.run == nil {
		return
	}
	t.run.cancel()
	t.run = nil
}

func (t *Trainer) tick(ctx context.Context, h *Handle) {
	defer func() {
		t.mu.Lock()
		if t.run == h {
			t.run = nil
		}
		t.mu.Unlock()
		h.close()
	}()

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if t.advance(ctx, h) {
			return
		}
	}
}

// advance applies one tick and reports whether the run is over.
func (t *Trainer) advance(ctx context.Context, h *Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ctx.Err() != nil {
		return true
	}

	st := t.store.Snapshot()
	progress := min(st.Training.Progress+t.cfg.Step, completeProgress)
	t.store.Dispatch(state.SetTrainingProgress{Progress: progress})
	if progress < completeProgress {
		return false
	}

	t.run = nil
	h.completed.Store(true)
	h.cancel()

	org := backend.UnknownOrg
	if st.User != nil {
		org = st.User.Org
	}
	t.store.Dispatch(state.SetTrainingActive{Active: false})
	t.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Training Complete",
		Body:  "Local model training completed successfully!\nAccuracy: 92.3% | Loss: 0.187",
	}})
	t.store.Dispatch(state.AddLedgerEntry{Entry: domain.LedgerEntry{
		Timestamp: backend.LedgerTimestamp(t.clock.Now()),
		Org:       org,
		Action:    domain.ActionModelUpdateSubmitted,
		TxHash:    t.gen.TxHash(),
	}})
	t.log.Info("training complete", zap.String("jobId", h.JobID), zap.Stringer("org", org))
	return true
}

package training_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/services/training"
	"qshield/internal/state"
)

type harness struct {
	store   *state.Store
	trainer *training.Trainer
	seen    []domain.TrainingState
}

func newHarness(t *testing.T, cfg training.Config) *harness {
	t.Helper()
	gen := backend.NewGenerator(backend.NewRandom())
	clock := backend.SystemClock()
	st := state.New(nil)
	h := &harness{
		store:   st,
		trainer: training.New(st, backend.New(clock, gen), gen, clock, cfg, nil),
	}
	st.Dispatch(state.SetUser{User: &domain.Session{ID: 1, Email: "ml@company-a.io", Org: "Company A"}})
	unsubscribe := st.Subscribe(func(a state.Action, next domain.State) {
		h.seen = append(h.seen, next.Training)
	})
	t.Cleanup(func() {
		h.trainer.Close()
		unsubscribe()
	})
	return h
}

func waitDone(t *testing.T, run *training.Handle) {
	t.Helper()
	select {
	case <-run.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestTrainer_RunsToCompletion(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Millisecond, Step: 25})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)
	require.Regexp(t, `^train_\d+$`, run.JobID)
	waitDone(t, run)

	require.True(t, run.Completed())
	st := h.store.Snapshot()
	require.Equal(t, domain.TrainingState{Progress: 100, Active: false}, st.Training)
	require.Len(t, st.Ledger, 1)
	require.Equal(t, domain.Org("Company A"), st.Ledger[0].Org)
	require.Equal(t, domain.ActionModelUpdateSubmitted, st.Ledger[0].Action)
	require.Regexp(t, `^0x[0-9a-f]{64}$`, st.Ledger[0].TxHash)
	require.True(t, st.Modal.Visible)
	require.Equal(t, "Training Complete", st.Modal.Content.Title)

	_, running := h.trainer.Running()
	require.False(t, running)
}

func TestTrainer_ProgressMonotonicAndBounded(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Millisecond, Step: 30})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)
	waitDone(t, run)

	var progress []int
	last := 0
	for _, ts := range h.seen {
		require.GreaterOrEqual(t, ts.Progress, 0)
		require.LessOrEqual(t, ts.Progress, 100)
		if ts.Active {
			require.GreaterOrEqual(t, ts.Progress, last)
		}
		if ts.Progress != last {
			progress = append(progress, ts.Progress)
		}
		last = ts.Progress
	}
	require.Equal(t, []int{30, 60, 90, 100}, progress)
	require.Len(t, h.store.Snapshot().Ledger, 1)
}

func TestTrainer_RefusesSecondRun(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Hour})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)

	_, err = h.trainer.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrTrainingActive)

	h.trainer.Pause()
	waitDone(t, run)
	require.False(t, run.Completed())
}

func TestTrainer_PauseKeepsProgress(t *testing.T) {
	h := newHarness(t, training.Config{Interval: 2 * time.Millisecond, Step: 5})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return h.store.Snapshot().Training.Progress >= 20
	}, 5*time.Second, time.Millisecond)

	h.trainer.Pause()
	waitDone(t, run)
	paused := h.store.Snapshot().Training
	require.False(t, paused.Active)
	require.Less(t, paused.Progress, 100)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, paused, h.store.Snapshot().Training)
	require.Empty(t, h.store.Snapshot().Ledger)

	// Resuming continues from where the run stopped.
	run, err = h.trainer.Start(context.Background())
	require.NoError(t, err)
	waitDone(t, run)
	require.True(t, run.Completed())
	require.Len(t, h.store.Snapshot().Ledger, 1)
}

func TestTrainer_Reset(t *testing.T) {
	h := newHarness(t, training.Config{Interval: 2 * time.Millisecond, Step: 10})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return h.store.Snapshot().Training.Progress >= 10
	}, 5*time.Second, time.Millisecond)

	h.trainer.Reset()
	waitDone(t, run)
	require.Equal(t, domain.TrainingState{}, h.store.Snapshot().Training)
}

func TestTrainer_RestartAfterCompletionBeginsAtZero(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Millisecond, Step: 50})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)
	waitDone(t, run)

	h.seen = nil
	run, err = h.trainer.Start(context.Background())
	require.NoError(t, err)
	waitDone(t, run)

	require.Equal(t, 0, h.seen[0].Progress)
	require.Len(t, h.store.Snapshot().Ledger, 2)
}

func TestTrainer_RequiresSession(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Millisecond})
	h.store.Dispatch(state.Logout{})

	_, err := h.trainer.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrNotSignedIn)
	require.False(t, h.store.Snapshot().Training.Active)
}

func TestTrainer_CallerCancelsDuringStart(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Millisecond, StartDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := h.trainer.Start(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, h.store.Snapshot().Training.Active)

	_, running := h.trainer.Running()
	require.False(t, running)
}

func TestTrainer_PauseDuringStart(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Millisecond, StartDelay: time.Hour})

	errc := make(chan error, 1)
	go func() {
		_, err := h.trainer.Start(context.Background())
		errc <- err
	}()
	require.Eventually(t, func() bool {
		return h.store.Snapshot().Training.Active
	}, 5*time.Second, time.Millisecond)

	h.trainer.Pause()
	require.ErrorIs(t, <-errc, context.Canceled)
	require.Equal(t, domain.TrainingState{}, h.store.Snapshot().Training)
}

func TestHandle_StopFreesTrainer(t *testing.T) {
	h := newHarness(t, training.Config{Interval: time.Hour})

	run, err := h.trainer.Start(context.Background())
	require.NoError(t, err)
	run.Stop()
	waitDone(t, run)

	require.True(t, h.store.Snapshot().Training.Active, "Stop leaves state alone")
	run, err = h.trainer.Start(context.Background())
	require.NoError(t, err)
	h.trainer.Pause()
	waitDone(t, run)
}

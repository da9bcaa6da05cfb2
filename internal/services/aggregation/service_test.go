package aggregation_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/services/aggregation"
	"qshield/internal/state"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// halfRandom always draws the midpoint, so every round gains exactly 1.0.
type halfRandom struct{}

func (halfRandom) IntN(n int) int   { return n / 2 }
func (halfRandom) Float64() float64 { return 0.5 }

var now = time.Date(2025, 10, 3, 9, 15, 0, 0, time.UTC)

func newService(t *testing.T, signedIn bool) (*aggregation.Service, *state.Store) {
	t.Helper()
	st := state.New(nil)
	if signedIn {
		st.Dispatch(state.SetUser{User: &domain.Session{ID: 1, Email: "hub@example.io", Org: "Company A"}})
	}
	gen := backend.NewGenerator(halfRandom{})
	clock := fixedClock{now}
	svc := aggregation.New(st, backend.New(clock, gen), gen, clock, nil)
	svc.Delay = 0
	return svc, st
}

func TestTrigger(t *testing.T) {
	require := require.New(t)
	svc, st := newService(t, true)

	var closed atomic.Int32
	model, err := svc.Trigger(context.Background(), func() { closed.Add(1) })
	require.NoError(err)
	require.Equal(domain.GlobalModel{Version: "1.3.3", Accuracy: 95.7, Rounds: 13, LastUpdate: "2025-10-03"}, model)

	snap := st.Snapshot()
	require.Equal(model, snap.Model)
	require.Len(snap.Ledger, 1)
	require.Equal(aggregation.HubOrg, snap.Ledger[0].Org)
	require.Equal(domain.ActionAggregationCompleted, snap.Ledger[0].Action)
	require.Equal("2025-10-03 09:15:00", snap.Ledger[0].Timestamp)
	require.Equal("Aggregation Complete", snap.Modal.Content.Title)
	require.Contains(snap.Modal.Content.Body, "New Version: 1.3.3")

	st.Dispatch(state.HideModal{})
	st.Dispatch(state.HideModal{})
	require.EqualValues(1, closed.Load())
}

func TestTriggerBuildsOnPreviousRound(t *testing.T) {
	require := require.New(t)
	svc, st := newService(t, true)
	st.Dispatch(state.SetGlobalModel{Model: domain.GlobalModel{Version: "1.3.9", Accuracy: 99.5, Rounds: 20}})

	model, err := svc.Trigger(context.Background(), nil)
	require.NoError(err)
	require.Equal("1.3.10", model.Version)
	require.Equal(100.0, model.Accuracy)
	require.Equal(21, model.Rounds)

	model, err = svc.Trigger(context.Background(), nil)
	require.NoError(err)
	require.Equal("1.3.11", model.Version)
	require.Len(st.Snapshot().Ledger, 2)
}

func TestTriggerConflict(t *testing.T) {
	require := require.New(t)
	svc, st := newService(t, true)
	svc.Delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := svc.Trigger(ctx, nil)
		errc <- err
	}()
	require.Eventually(svc.Running, 5*time.Second, time.Millisecond)

	_, err := svc.Trigger(context.Background(), nil)
	require.ErrorIs(err, domain.ErrAggregationConflict)

	cancel()
	require.ErrorIs(<-errc, context.Canceled)
	require.False(svc.Running())
	require.Equal(domain.DefaultGlobalModel(), st.Snapshot().Model)
	require.False(st.Snapshot().Modal.Visible)
	require.Empty(st.Snapshot().Ledger)
}

func TestTriggerRequiresSession(t *testing.T) {
	svc, _ := newService(t, false)
	_, err := svc.Trigger(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrNotSignedIn)
}

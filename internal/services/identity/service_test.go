package identity_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/services/identity"
	"qshield/internal/state"
)

// clock is a settable Clock.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

var issued = time.Date(2025, 10, 3, 9, 15, 0, 0, time.UTC)

func newService(t *testing.T, org domain.Org) (*identity.Service, *state.Store, *clock) {
	t.Helper()
	c := &clock{t: issued}
	st := state.New(nil)
	if org != "" {
		st.Dispatch(state.SetUser{User: &domain.Session{ID: 1, Email: "ops@example.io", Org: org}})
	}
	sim := backend.New(c, backend.NewGenerator(backend.NewRandom()))
	svc := identity.New(st, sim, c, nil)
	svc.CertificateDelay = 0
	svc.RegistrationDelay = 0
	return svc, st, c
}

func TestGenerateCertificate(t *testing.T) {
	require := require.New(t)
	svc, st, _ := newService(t, "Company A")

	cert, err := svc.GenerateCertificate(context.Background())
	require.NoError(err)
	require.Equal(domain.Org("Company A"), cert.OrgName)
	require.Equal(backend.CertificateAlgorithm, cert.Algorithm)
	require.Regexp(`^[0-9a-f]{64}$`, cert.PublicKey)
	require.Equal(issued, cert.IssuedAt)
	require.Equal(domain.CertificateValidity, cert.ExpiresAt.Sub(cert.IssuedAt))

	snap := st.Snapshot()
	require.Equal(&cert, snap.Certificate)
	require.True(snap.Modal.Visible)
	require.Equal("Certificate Generated", snap.Modal.Content.Title)
	require.Contains(snap.Modal.Content.Body, cert.PublicKey)
	require.Regexp(`^[0-9a-f]{20}$`, cert.Fingerprint())
	require.Contains(snap.Modal.Content.Body, cert.Fingerprint())
	require.Empty(snap.Ledger)
}

func TestGenerateCertificateReplacesPrevious(t *testing.T) {
	require := require.New(t)
	svc, st, _ := newService(t, "Company B")

	first, err := svc.GenerateCertificate(context.Background())
	require.NoError(err)
	second, err := svc.GenerateCertificate(context.Background())
	require.NoError(err)

	require.NotEqual(first.PublicKey, second.PublicKey)
	require.Equal(second.PublicKey, st.Snapshot().Certificate.PublicKey)
}

func TestGenerateCertificateRequiresSession(t *testing.T) {
	svc, _, _ := newService(t, "")
	_, err := svc.GenerateCertificate(context.Background())
	require.ErrorIs(t, err, domain.ErrNotSignedIn)
}

func TestGenerateCertificateCancelled(t *testing.T) {
	require := require.New(t)
	svc, st, _ := newService(t, "Company A")
	svc.CertificateDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.GenerateCertificate(ctx)
	require.ErrorIs(err, context.Canceled)

	snap := st.Snapshot()
	require.Nil(snap.Certificate)
	require.False(snap.Modal.Visible)
}

func TestRegisterIdentity(t *testing.T) {
	require := require.New(t)
	svc, st, _ := newService(t, "Company C")

	_, err := svc.GenerateCertificate(context.Background())
	require.NoError(err)
	reg, err := svc.RegisterIdentity(context.Background())
	require.NoError(err)

	require.Regexp(`^0x[0-9a-f]{64}$`, reg.TxHash)
	require.Equal(backend.StatusConfirmed, reg.Status)
	require.GreaterOrEqual(reg.BlockNumber, 0)
	require.Less(reg.BlockNumber, 1_000_000)

	snap := st.Snapshot()
	require.Equal([]domain.LedgerEntry{{
		Timestamp: "2025-10-03 09:15:00",
		Org:       "Company C",
		Action:    domain.ActionIdentityRegistered,
		TxHash:    reg.TxHash,
	}}, snap.Ledger)
	require.Equal("Registration Complete", snap.Modal.Content.Title)
}

func TestRegisterIdentityRequiresCertificate(t *testing.T) {
	require := require.New(t)
	svc, st, _ := newService(t, "Company A")

	_, err := svc.RegisterIdentity(context.Background())
	require.ErrorIs(err, domain.ErrNoCertificate)
	require.Empty(st.Snapshot().Ledger)
	require.False(st.Snapshot().Modal.Visible)
}

func TestRegisterIdentityRejectsExpiredCertificate(t *testing.T) {
	require := require.New(t)
	svc, st, c := newService(t, "Company A")

	_, err := svc.GenerateCertificate(context.Background())
	require.NoError(err)

	c.Set(issued.Add(domain.CertificateValidity - time.Second))
	_, err = svc.RegisterIdentity(context.Background())
	require.NoError(err)

	c.Set(issued.Add(domain.CertificateValidity))
	_, err = svc.RegisterIdentity(context.Background())
	require.ErrorIs(err, domain.ErrCertificateExpired)
	require.Len(st.Snapshot().Ledger, 1)
}

package identity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/state"
)

// Default latencies of the simulated calls.
const (
	DefaultCertificateDelay  = 1500 * time.Millisecond
	DefaultRegistrationDelay = 2000 * time.Millisecond
)

// Registration is the outcome of publishing the certificate to the ledger.
type Registration struct {
	TxHash      string `json:"txHash"`
	BlockNumber int    `json:"blockNumber"`
	Status      string `json:"status"`
}

// Service issues certificates and registers identities.
type Service struct {
	store state.Dispatcher
	sim   domain.Simulator
	clock domain.Clock
	log   *zap.Logger

	CertificateDelay  time.Duration
	RegistrationDelay time.Duration
}

// New returns an identity service with default latencies.
func New(store state.Dispatcher, sim domain.Simulator, clock domain.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:             store,
		sim:               sim,
		clock:             clock,
		log:               log,
		CertificateDelay:  DefaultCertificateDelay,
		RegistrationDelay: DefaultRegistrationDelay,
	}
}

// GenerateCertificate issues a certificate for the session's organisation,
// replacing any certificate already held.
func (s *Service) GenerateCertificate(ctx context.Context) (domain.Certificate, error) {
	st := s.store.Snapshot()
	if st.User == nil {
		return domain.Certificate{}, domain.ErrNotSignedIn
	}

	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Generating Certificate",
		Body:  "Generating quantum-safe certificate...",
	}})

	resp, err := s.sim.Call(ctx, domain.Request{Operation: domain.OpGenerateCert, Delay: s.CertificateDelay})
	if err != nil {
		s.store.Dispatch(state.HideModal{})
		return domain.Certificate{}, fmt.Errorf("generate certificate: %w", err)
	}

	cert := *resp.Certificate
	cert.OrgName = st.User.Org
	if cert.OrgName == "" {
		cert.OrgName = backend.UnknownOrg
	}
	s.store.Dispatch(state.SetCertificate{Certificate: &cert})

	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Certificate Generated",
		Body: fmt.Sprintf("Organization: %s\nAlgorithm: %s\nPublic Key: %s\nFingerprint: %s\nIssued: %s",
			cert.OrgName, cert.Algorithm, cert.PublicKey, cert.Fingerprint(), cert.IssuedAt.Format(time.RFC1123)),
	}})
	s.log.Info("certificate issued",
		zap.Stringer("org", cert.OrgName),
		zap.Time("expiresAt", cert.ExpiresAt),
	)
	return cert, nil
}

// RegisterIdentity publishes the held certificate and records the
// transaction in the ledger.
func (s *Service) RegisterIdentity(ctx context.Context) (Registration, error) {
	st := s.store.Snapshot()
	if st.User == nil {
		return Registration{}, domain.ErrNotSignedIn
	}
	if st.Certificate == nil {
		return Registration{}, domain.ErrNoCertificate
	}
	if st.Certificate.Expired(s.clock.Now()) {
		return Registration{}, domain.ErrCertificateExpired
	}

	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Registering on Blockchain",
		Body:  "Broadcasting transaction...",
	}})

	resp, err := s.sim.Call(ctx, domain.Request{Operation: domain.OpRegisterBlockchain, Delay: s.RegistrationDelay})
	if err != nil {
		s.store.Dispatch(state.HideModal{})
		return Registration{}, fmt.Errorf("register identity: %w", err)
	}

	s.store.Dispatch(state.AddLedgerEntry{Entry: domain.LedgerEntry{
		Timestamp: backend.LedgerTimestamp(s.clock.Now()),
		Org:       st.User.Org,
		Action:    domain.ActionIdentityRegistered,
		TxHash:    resp.TxHash,
	}})

	reg := Registration{TxHash: resp.TxHash, BlockNumber: resp.BlockNumber, Status: resp.Status}
	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Registration Complete",
		Body: fmt.Sprintf("Status: %s\nTransaction Hash: %s\nBlock Number: %d\n\nYour identity is now registered on the blockchain!",
			reg.Status, reg.TxHash, reg.BlockNumber),
	}})
	s.log.Info("identity registered",
		zap.Stringer("org", st.User.Org),
		zap.String("txHash", reg.TxHash),
		zap.Int("block", reg.BlockNumber),
	)
	return reg, nil
}

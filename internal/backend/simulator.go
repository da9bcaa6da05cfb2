package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"qshield/internal/domain"
)

// Values the simulated backend hands out.
const (
	CertificateAlgorithm = "CRYSTALS-Dilithium"
	UnknownOrg           = domain.Org("Unknown Org")
	StatusConfirmed      = "confirmed"
)

// Simulator resolves backend calls after a fixed latency with canned data.
type Simulator struct {
	clock domain.Clock
	gen   *Generator
	log   *zap.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for call tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

// New returns a Simulator drawing time from clock and randomness from gen.
func New(clock domain.Clock, gen *Generator, opts ...Option) *Simulator {
	s := &Simulator{clock: clock, gen: gen, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Call waits req.Delay and returns the canned response for req.Operation.
func (s *Simulator) Call(ctx context.Context, req domain.Request) (domain.Response, error) {
	if req.Delay > 0 {
		t := time.NewTimer(req.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Response{}, fmt.Errorf("%s: %w", req.Operation, ctx.Err())
		case <-t.C:
		}
	}

	resp := s.respond(req)
	s.log.Debug("simulated call resolved",
		zap.Stringer("operation", req.Operation),
		zap.Duration("delay", req.Delay),
	)
	return resp, nil
}

func (s *Simulator) respond(req domain.Request) domain.Response {
	now := s.clock.Now()
	switch req.Operation {
	case domain.OpGenerateCert:
		issued := now.UTC()
		return domain.Response{
			Success: true,
			Certificate: &domain.Certificate{
				OrgName:   UnknownOrg,
				Algorithm: CertificateAlgorithm,
				PublicKey: s.gen.Hex(64),
				IssuedAt:  issued,
				ExpiresAt: issued.Add(domain.CertificateValidity),
			},
		}
	case domain.OpRegisterBlockchain:
		return domain.Response{
			Success:     true,
			TxHash:      s.gen.TxHash(),
			BlockNumber: s.gen.BlockNumber(),
			Status:      StatusConfirmed,
		}
	case domain.OpStartTraining:
		return domain.Response{
			Success: true,
			JobID:   fmt.Sprintf("train_%d", now.UnixMilli()),
		}
	case domain.OpTriggerAggregation:
		next := s.NextModel(req.Model, now)
		return domain.Response{Success: true, NewModel: &next}
	default:
		return domain.Response{Success: true}
	}
}

// NextModel derives the model produced by one aggregation round over cur.
// A nil cur starts from the default model.
func (s *Simulator) NextModel(cur *domain.GlobalModel, now time.Time) domain.GlobalModel {
	base := domain.DefaultGlobalModel()
	if cur != nil {
		base = *cur
	}
	return domain.GlobalModel{
		Version:    IncrementVersion(base.Version),
		Accuracy:   roundAccuracy(base.Accuracy + s.gen.AccuracyGain()),
		Rounds:     base.Rounds + 1,
		LastUpdate: now.UTC().Format(time.DateOnly),
	}
}

// Compile-time assertion that Simulator implements domain.Simulator.
var _ domain.Simulator = (*Simulator)(nil)

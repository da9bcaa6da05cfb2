package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"qshield/internal/domain"
	"qshield/internal/state"
)

// DefaultDelay is how long package preparation takes.
const DefaultDelay = 1500 * time.Millisecond

// Properties of every model package.
const (
	PackageSizeMB = 485
	PackageFormat = "Encrypted .pqm"
)

// Package describes a downloadable model build.
type Package struct {
	Version string `json:"version"`
	SizeMB  int    `json:"sizeMb"`
	Format  string `json:"format"`
}

// Service prepares model packages.
type Service struct {
	store state.Dispatcher
	sim   domain.Simulator
	log   *zap.Logger

	Delay time.Duration
}

// New returns a catalog service with the default preparation delay.
func New(store state.Dispatcher, sim domain.Simulator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, sim: sim, log: log, Delay: DefaultDelay}
}

// Model returns the current global model.
func (s *Service) Model() domain.GlobalModel { return s.store.Snapshot().Model }

// Download prepares the current global model for download.
func (s *Service) Download(ctx context.Context) (Package, error) {
	st := s.store.Snapshot()
	if st.User == nil {
		return Package{}, domain.ErrNotSignedIn
	}

	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Downloading Model",
		Body:  "Preparing encrypted model package...",
	}})
	if _, err := s.sim.Call(ctx, domain.Request{Operation: domain.OpDownloadModel, Delay: s.Delay}); err != nil {
		s.store.Dispatch(state.HideModal{})
		return Package{}, fmt.Errorf("download model: %w", err)
	}

	pkg := Package{Version: st.Model.Version, SizeMB: PackageSizeMB, Format: PackageFormat}
	s.store.Dispatch(state.ShowModal{Content: domain.ModalContent{
		Title: "Download Started",
		Body:  fmt.Sprintf("Model package is being downloaded.\nSize: %d MB | Format: %s", pkg.SizeMB, pkg.Format),
	}})
	s.log.Info("model download started", zap.String("version", pkg.Version))
	return pkg, nil
}

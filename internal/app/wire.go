package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"qshield/internal/backend"
	"qshield/internal/domain"
	"qshield/internal/services/aggregation"
	"qshield/internal/services/audit"
	"qshield/internal/services/catalog"
	"qshield/internal/services/dashboard"
	"qshield/internal/services/identity"
	"qshield/internal/services/session"
	"qshield/internal/services/training"
	"qshield/internal/state"
	"qshield/internal/store"
)

// SQLiteFile is the database file name under Home for the sqlite backend.
const SQLiteFile = "qshield.db"

// Wire bundles the state store, simulated backend and services.
type Wire struct {
	Log   *zap.Logger
	Store *state.Store
	Sim   domain.Simulator
	Clock domain.Clock

	Sessions    *session.Service
	Identity    *identity.Service
	Training    *training.Trainer
	Aggregation *aggregation.Service
	Catalog     *catalog.Service
	Audit       *audit.Service
	Dashboard   *dashboard.Service

	kv          domain.KeyValueStore
	unsubscribe func()
}

// NewWire constructs the dependency graph from cfg and rehydrates the state
// store from the configured backend. log may be nil.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if log == nil {
		log = zap.NewNop()
	}

	kv, err := openKV(cfg)
	if err != nil {
		return nil, err
	}
	st, err := state.Open(kv, state.WithLogger(log.Named("state")))
	if err != nil {
		closeKV(kv)
		return nil, err
	}

	clock := backend.SystemClock()
	gen := backend.NewGenerator(backend.NewRandom())
	var sim domain.Simulator = backend.New(clock, gen, backend.WithLogger(log.Named("backend")))
	if cfg.Simulator != nil {
		sim = cfg.Simulator(sim)
	}

	ids := identity.New(st, sim, clock, log.Named("identity"))
	ids.CertificateDelay = cfg.Delays.Certificate
	ids.RegistrationDelay = cfg.Delays.Registration

	agg := aggregation.New(st, sim, gen, clock, log.Named("aggregation"))
	agg.Delay = cfg.Delays.Aggregation

	cat := catalog.New(st, sim, log.Named("catalog"))
	cat.Delay = cfg.Delays.Download

	trainer := training.New(st, sim, gen, clock, training.Config{
		Interval:   cfg.Training.Interval,
		Step:       cfg.Training.Step,
		StartDelay: cfg.Training.StartDelay,
	}, log.Named("training"))

	w := &Wire{
		Log:         log,
		Store:       st,
		Sim:         sim,
		Clock:       clock,
		Sessions:    session.New(st, clock, log.Named("session")),
		Identity:    ids,
		Training:    trainer,
		Aggregation: agg,
		Catalog:     cat,
		Audit:       audit.New(st),
		Dashboard:   dashboard.New(st),
		kv:          kv,
	}

	// A logout ends any run the departing operator started.
	w.unsubscribe = st.Subscribe(func(a state.Action, _ domain.State) {
		if _, ok := a.(state.Logout); ok {
			trainer.Close()
		}
	})
	return w, nil
}

// Close stops background work and releases the persistence backend.
func (w *Wire) Close() error {
	w.unsubscribe()
	w.Training.Close()
	if c, ok := w.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func openKV(cfg Config) (domain.KeyValueStore, error) {
	var kv domain.KeyValueStore
	switch cfg.Backend {
	case BackendMemory:
		kv = store.NewMemoryStore()
	case BackendSQLite, BackendFile, "":
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, fmt.Errorf("create home: %w", err)
		}
		if cfg.Backend == BackendSQLite {
			db, err := store.OpenSQLite(filepath.Join(cfg.Home, SQLiteFile))
			if err != nil {
				return nil, err
			}
			kv = db
		} else {
			kv = store.NewFileStore(cfg.Home)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if cfg.Passphrase == "" {
		return kv, nil
	}
	sealed, err := store.NewSealedStore(kv, cfg.Passphrase)
	if err != nil {
		closeKV(kv)
		return nil, fmt.Errorf("open sealed store: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return sealed, nil
}

func closeKV(kv domain.KeyValueStore) {
	if c, ok := kv.(io.Closer); ok {
		_ = c.Close()
	}
}

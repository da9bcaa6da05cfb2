package state

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"qshield/internal/domain"
)

// Keys of the persisted slices.
const (
	KeySession     = "currentUser"
	KeyCertificate = "certificate"
	KeyLedger      = "ledgerEntries"
)

// Listener observes every applied action together with the state it produced.
// Listeners run outside the store lock and may dispatch.
type Listener func(a Action, next domain.State)

// Store owns the current state snapshot.
type Store struct {
	mu    sync.Mutex
	state domain.State
	kv    domain.KeyValueStore
	log   *zap.Logger

	subsMu    sync.RWMutex
	subs      map[int]Listener
	nextSubID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a store holding the initial state. kv may be nil, in which
// case nothing is persisted.
func New(kv domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		state: Initial(),
		kv:    kv,
		log:   zap.NewNop(),
		subs:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a store rehydrated from kv.
func Open(kv domain.KeyValueStore, opts ...Option) (*Store, error) {
	s := New(kv, opts...)
	if err := s.hydrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current state. The returned slices are copies.
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()

	st.Participants = slices.Clone(st.Participants)
	st.Ledger = slices.Clone(st.Ledger)
	return st
}

// Dispatch applies a. It never fails; persistence errors are logged.
func (s *Store) Dispatch(a Action) { s.apply(a) }

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = l
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

type applied struct {
	action Action
	next   domain.State
}

// apply reduces actions in order, persists once, then runs modal callbacks
// and listeners.
func (s *Store) apply(actions ...Action) {
	s.mu.Lock()
	first := s.state
	steps := make([]applied, 0, len(actions))
	var onClose []func()
	for _, a := range actions {
		prev := s.state
		s.state = Reduce(prev, a)
		if _, ok := a.(HideModal); ok && prev.Modal.Content != nil && prev.Modal.Content.OnClose != nil {
			onClose = append(onClose, prev.Modal.Content.OnClose)
		}
		steps = append(steps, applied{action: a, next: s.state})
	}
	s.persist(first, s.state)
	s.mu.Unlock()

	for _, fn := range onClose {
		fn()
	}

	s.subsMu.RLock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		listeners = append(listeners, l)
	}
	s.subsMu.RUnlock()
	for _, st := range steps {
		for _, l := range listeners {
			l(st.action, st.next)
		}
	}
}

// persist mirrors the durable slices of next. Called with s.mu held.
func (s *Store) persist(prev, next domain.State) {
	if s.kv == nil {
		return
	}
	switch {
	case next.User != nil:
		s.save(KeySession, next.User)
	case prev.User != nil:
		if err := s.kv.Delete(KeySession); err != nil {
			s.log.Error("delete persisted session", zap.Error(err))
		}
	}
	if next.Certificate != nil {
		s.save(KeyCertificate, next.Certificate)
	}
	s.save(KeyLedger, next.Ledger)
}

func (s *Store) save(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode persisted slice", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(key, b); err != nil {
		s.log.Error("persist slice", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) hydrate() error {
	if s.kv == nil {
		s.apply(SetLedgerEntries{Entries: SeedLedger()})
		return nil
	}

	var actions []Action

	var user *domain.Session
	if ok, err := s.load(KeySession, &user); err != nil {
		return err
	} else if ok && user != nil {
		actions = append(actions, SetUser{User: user})
	}

	var cert *domain.Certificate
	if ok, err := s.load(KeyCertificate, &cert); err != nil {
		return err
	} else if ok && cert != nil {
		actions = append(actions, SetCertificate{Certificate: cert})
	}

	var ledger []domain.LedgerEntry
	ok, err := s.load(KeyLedger, &ledger)
	if err != nil {
		return err
	}
	if !ok || ledger == nil {
		s.log.Info("seeding ledger")
		ledger = SeedLedger()
	}
	actions = append(actions, SetLedgerEntries{Entries: ledger})

	s.apply(actions...)
	return nil
}

// load decodes key into out. Missing or unparseable values report false;
// only storage failures are returned as errors.
func (s *Store) load(key string, out any) (bool, error) {
	b, ok, err := s.kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w: %w", key, domain.ErrStorageUnavailable, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		s.log.Warn("discarding unparseable persisted slice", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// Dispatcher is the part of a Store that services depend on.
type Dispatcher interface {
	Dispatch(a Action)
	Snapshot() domain.State
}

// Compile-time assertion that Store implements Dispatcher.
var _ Dispatcher = (*Store)(nil)

package session

import (
	"strings"

	"go.uber.org/zap"

	"qshield/internal/domain"
	"qshield/internal/state"
)

// Service manages the single live session.
type Service struct {
	store state.Dispatcher
	clock domain.Clock
	log   *zap.Logger
}

// New returns a session service over store.
func New(store state.Dispatcher, clock domain.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, clock: clock, log: log}
}

// SignIn replaces the current session with one for email at org.
func (s *Service) SignIn(email, org string) (domain.Session, error) {
	email = strings.TrimSpace(email)
	org = strings.TrimSpace(org)
	if email == "" || org == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	sess := domain.Session{
		ID:    s.clock.Now().UnixMilli(),
		Email: email,
		Org:   domain.Org(org),
	}
	s.store.Dispatch(state.SetUser{User: &sess})
	s.log.Info("signed in", zap.String("email", email), zap.String("org", org))
	return sess, nil
}

// SignOut ends the session.
func (s *Service) SignOut() {
	s.store.Dispatch(state.Logout{})
	s.log.Info("signed out")
}

// Current returns the live session, if any.
func (s *Service) Current() (domain.Session, bool) {
	u := s.store.Snapshot().User
	if u == nil {
		return domain.Session{}, false
	}
	return *u, true
}

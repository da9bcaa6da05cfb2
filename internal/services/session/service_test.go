package session_test

import (
	"errors"
	"testing"
	"time"

	"qshield/internal/domain"
	"qshield/internal/services/session"
	"qshield/internal/state"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var now = time.Date(2025, 10, 3, 9, 15, 0, 0, time.UTC)

func TestSignIn(t *testing.T) {
	st := state.New(nil)
	svc := session.New(st, fixedClock{now}, nil)

	sess, err := svc.SignIn("  analyst@company-b.io ", "Company B")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.Email != "analyst@company-b.io" || sess.Org != "Company B" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.ID != now.UnixMilli() {
		t.Fatalf("id = %d, want %d", sess.ID, now.UnixMilli())
	}

	cur, ok := svc.Current()
	if !ok || cur != sess {
		t.Fatalf("Current = %+v, %v", cur, ok)
	}
}

func TestSignInRejectsBlankFields(t *testing.T) {
	svc := session.New(state.New(nil), fixedClock{now}, nil)

	for _, in := range [][2]string{{"", "Company A"}, {"a@b.io", " "}, {"", ""}} {
		if _, err := svc.SignIn(in[0], in[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("SignIn(%q, %q) err = %v", in[0], in[1], err)
		}
	}
	if _, ok := svc.Current(); ok {
		t.Fatal("rejected sign-in must not create a session")
	}
}

func TestSignInReplacesSession(t *testing.T) {
	svc := session.New(state.New(nil), fixedClock{now}, nil)

	if _, err := svc.SignIn("a@company-a.io", "Company A"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SignIn("c@company-c.io", "Company C"); err != nil {
		t.Fatal(err)
	}
	cur, _ := svc.Current()
	if cur.Org != "Company C" {
		t.Fatalf("org = %q", cur.Org)
	}
}

func TestSignOutKeepsLedgerAndCertificate(t *testing.T) {
	st := state.New(nil)
	svc := session.New(st, fixedClock{now}, nil)
	if _, err := svc.SignIn("a@company-a.io", "Company A"); err != nil {
		t.Fatal(err)
	}
	st.Dispatch(state.SetCertificate{Certificate: &domain.Certificate{OrgName: "Company A"}})
	st.Dispatch(state.AddLedgerEntry{Entry: domain.LedgerEntry{Org: "Company A", Action: domain.ActionIdentityRegistered}})
	st.Dispatch(state.SetTrainingProgress{Progress: 40})

	svc.SignOut()

	if _, ok := svc.Current(); ok {
		t.Fatal("session survived sign-out")
	}
	snap := st.Snapshot()
	if snap.Certificate == nil || len(snap.Ledger) != 1 {
		t.Fatalf("sign-out dropped durable state: %+v", snap)
	}
	if snap.Training != (domain.TrainingState{}) {
		t.Fatalf("training not reset: %+v", snap.Training)
	}
}

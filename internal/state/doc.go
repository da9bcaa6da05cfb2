// Package state holds the console's single source of truth.
//
// State changes are expressed as actions and applied by Reduce, a pure
// function of (previous state, action). A Store owns the current snapshot,
// serialises dispatches, mirrors the session, certificate and ledger slices
// into a key-value store after every change, and notifies subscribers.
//
// # Persistence
//
// Three keys are written:
//
//	currentUser    the signed-in session, when one exists (deleted on logout)
//	certificate    the held certificate, when one exists
//	ledgerEntries  the ledger, always (including when empty)
//
// Open rehydrates those keys at startup. A missing or unparseable ledger is
// replaced by the three seed entries, which are persisted immediately.
package state

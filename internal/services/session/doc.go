// Package session signs operators in and out.
//
// Sign-in performs no authentication: any non-empty email and organisation
// produce a session. Sign-out dispatches the partial reset that keeps the
// ledger, participants and global model.
package session

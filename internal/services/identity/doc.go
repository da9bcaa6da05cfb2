// Package identity runs the onboarding flows: issuing the organisation's
// placeholder certificate and registering it on the simulated ledger.
//
// Both flows show a progress modal while the simulated backend call is in
// flight and replace it with a result modal once it resolves.
package identity

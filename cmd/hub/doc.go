// Package main runs the qshield hub: the HTTP front of the console that a
// browser dashboard talks to.
//
// HTTP API
//
//	GET    /health                 liveness
//	GET    /metrics                Prometheus metrics
//	GET    /state                  full state snapshot
//	GET    /dashboard              overview (threats, rounds, recent activity)
//	GET    /participants           federation members
//	POST   /session                {"email", "org"}: sign in
//	DELETE /session                sign out
//	POST   /certificate            generate the organisation certificate
//	POST   /registration           register the certificate on the ledger
//	GET    /training               progress, active flag and job ID
//	POST   /training/start         start a run; returns once ticking begins
//	POST   /training/pause         stop ticking, keep progress
//	POST   /training/reset         stop ticking, progress 0
//	POST   /aggregation            run an aggregation round
//	GET    /model                  current global model
//	POST   /model/download         prepare the model package
//	GET    /ledger?q=term          search the ledger
//	DELETE /modal                  dismiss the open modal
//	POST   /modal/system-flow      open the architecture modal
//	POST   /actions                {"type", "payload"}: dispatch a raw action
//	POST   /mock/{op}?delay_ms=N   call the simulated backend directly
//
// Behaviour
//
//   - Configuration comes from the same sources as the CLI (QSHIELD_* env,
//     config file, --home/--passphrase/--backend flags). The listen address is
//     hub.addr (default 127.0.0.1:8080).
//   - State is shared with the CLI through the persistence backend, but only
//     at startup: the hub rehydrates once and then owns its snapshot.
//   - SIGINT/SIGTERM drain in-flight requests for up to five seconds.
package main

// Package app wires application dependencies for the CLI and the hub.
//
// Load resolves Config from defaults, the TOML config file, QSHIELD_*
// environment variables and command-line flags. NewWire opens the configured
// persistence backend, rehydrates the state store from it and builds the
// simulated backend and high-level services, exposing them via the Wire
// struct.
package app

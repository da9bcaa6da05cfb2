// Package backend simulates the federation backend.
//
// Every call waits for the requested latency and then resolves with a canned
// or randomly generated response. Calls never fail on their own; the only
// error a caller can observe is its own context being cancelled.
//
// # Operations
//
//   - generate-cert        placeholder CRYSTALS-Dilithium certificate, valid 365 days
//   - register-blockchain  "0x"-prefixed transaction hash and a block number
//   - start-training       job identifier "train_<epoch millis>"
//   - trigger-aggregation  next global model derived from the supplied one
//   - anything else        {success: true}
//
// Randomness and time are injected so tests can assert exact outputs.
package backend

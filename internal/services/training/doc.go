// Package training drives the simulated local training run.
//
// A run marks training active, awaits the simulated start-training call,
// then advances progress by a fixed step on a repeating tick. The first tick
// that reaches 100 stops the run, shows the completion modal and appends one
// "Model Update Submitted" ledger entry. Only one run may be outstanding.
package training

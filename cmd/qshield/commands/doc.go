// Package commands defines the qshield CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login          Start a session for an operator and organisation
//   - logout         End the session; ledger and model are kept
//   - whoami         Print the current session
//   - status         Print the dashboard overview
//   - participants   List federation members
//   - cert           Generate the organisation's certificate
//   - register       Register the certificate on the ledger
//   - train          Run local training to completion
//   - aggregate      Run a secure aggregation round
//   - model          Print the current global model
//   - download       Prepare the global model package
//   - audit [term]   Search the ledger
//
// # Implementation
//
// The root command resolves configuration (flags, QSHIELD_* environment,
// config file) and builds the dependency graph before any subcommand runs.
// State is rehydrated from the configured backend on every invocation, so a
// session started by login is visible to later commands.
package commands

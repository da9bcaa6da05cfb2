// Package audit queries the ledger.
package audit

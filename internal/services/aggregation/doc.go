// Package aggregation runs simulated secure-aggregation rounds that fold
// participant updates into a new global model version.
package aggregation

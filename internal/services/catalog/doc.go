// Package catalog serves the aggregated global model to participants.
package catalog

// Package hub exposes the console over HTTP so a browser front end can render
// it.
//
// Every route reads or drives the shared state store through the services
// wired by package app. Responses are JSON; failures carry
// {"error": "..."} with a status derived from the domain error:
//
//	400  invalid credentials, malformed request
//	401  not signed in
//	409  training already running, aggregation already in progress
//	412  no certificate, certificate expired
//	503  storage unavailable
//
// Requests are tagged with an X-Request-ID and logged once on completion.
// Prometheus metrics are served on /metrics.
package hub

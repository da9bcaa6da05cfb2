// Package domain defines the console's data model and the contracts between
// its layers. Types live in types/ and interfaces in interfaces/; exports.go
// re-exports both so callers import a single package.
package domain

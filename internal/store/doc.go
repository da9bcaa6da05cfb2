// Package store provides the durable key-value backends the state store
// mirrors into.
//
// Every backend implements domain.KeyValueStore and is safe for concurrent
// use. Values are opaque bytes; the state package writes JSON documents.
//
// The package includes:
//   - FileStore: one file per key under a directory, replaced atomically
//   - SQLiteStore: a single kv table in a SQLite database
//   - DatabaseStore: any luxfi database.Database (memdb for ephemeral use)
//   - SealedStore: a wrapper encrypting values under a passphrase
package store

package interfaces

// KeyValueStore is the durable storage port the state store mirrors into.
type KeyValueStore interface {
	// Get returns the value under key and whether it was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

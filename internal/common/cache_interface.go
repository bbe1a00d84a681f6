package common

// Store is the keyed storage behind the temporal caches. Implementations
// never expire entries on their own; freshness is decided by the caller,
// which records a fetch instant inside the stored value.
type Store[V any] interface {
	// Get retrieves a value by key
	// Returns the value and true if found, the zero value and false otherwise
	Get(key string) (V, bool)

	// Set stores a value, overwriting any previous value for the key
	Set(key string, value V)

	// Clear removes every entry owned by this store
	Clear()

	// Len returns the number of entries currently held
	Len() int
}

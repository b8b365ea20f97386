// Package store provides the durable key-value storage the engine writes
// through after every committed mutation. Writes are synchronous and
// last-write-wins; there is no transactionality across keys.
package store

// Store is a thin synchronous key-value adapter
type Store interface {
	// Get returns the value for key, reporting absence via ok
	Get(key string) (value string, ok bool, err error)

	// Set overwrites the value for key unconditionally
	Set(key, value string) error

	Close() error
}

// Keys derives the per-user storage keys for the three persisted
// collections
type Keys struct {
	Conversation string
	Sessions     string
	Folders      string
}

// KeysFor returns the storage keys for a user identity
func KeysFor(user string) Keys {
	return Keys{
		Conversation: "chat_" + user,
		Sessions:     "sessions_" + user,
		Folders:      "folders_" + user,
	}
}

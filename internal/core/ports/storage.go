package ports

import "context"

// Storage is one browser's durable key-value scope. It replaces the
// browser's localStorage: every component that reads or writes session
// state goes through the Storage it was handed.
//
// Get reports ok=false for a missing key. Implementations must be safe
// for concurrent use; the last writer wins.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// StorageFactory hands out the Storage scope for a browser session ID.
type StorageFactory interface {
	For(sessionID string) Storage
}

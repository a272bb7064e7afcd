// Package store is the persistent preference store: a durable string
// key/value map holding the theme, auth session, per-item like flags and
// search history. Callers serialize structured values themselves.
package store

import "context"

// Store is the storage port handed to the session, engagement and
// preference services.
//
// Get reports ok=false for an absent key. Remove of an absent key is not an
// error. Atomically runs fn so that every Set/Remove issued through ctx
// inside fn is applied all-or-nothing.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}

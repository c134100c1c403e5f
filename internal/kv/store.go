package kv

// Store is a scoped string key-value medium. Keys are namespaced by the
// caller (each subsystem derives its own prefix), values are opaque text.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

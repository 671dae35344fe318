package persistence

import "errors"

var ErrNotInteger = errors.New("value is not an integer")

// KeyValueStore is the durable namespace the persistence service writes to.
// Values are strings; Incr must be atomic and treat a missing key as zero.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Incr(key string) (int64, error)
}

package cache

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// KeyMaker derives a cache key from an operation name and its arguments.
//
// Implementations must be deterministic: the same operation and arguments
// always produce the same key, across processes and restarts. Keys feed
// straight into the backend, so they should stay short.
type KeyMaker interface {
	Key(op string, args ...any) (string, error)
}

// KeyMakerFunc adapts a plain function to the KeyMaker interface.
type KeyMakerFunc func(op string, args ...any) (string, error)

// Key calls fn.
func (fn KeyMakerFunc) Key(op string, args ...any) (string, error) {
	return fn(op, args...)
}

// hashKeyMaker builds keys as "{namespace}:{op}:{hash}" where hash is the
// xxhash64 of the JSON-encoded argument list. JSON encoding keeps the key
// stable for equal argument values (map keys are sorted, struct fields
// keep declaration order), so arguments must be JSON-serializable.
type hashKeyMaker struct {
	namespace string
}

// DefaultKeyMaker returns the standard key maker. The namespace is
// prepended to every key and may be empty; use it to separate services
// sharing one backend.
func DefaultKeyMaker(namespace string) KeyMaker {
	return hashKeyMaker{namespace: namespace}
}

// Key derives the cache key for an operation call.
// Operations without arguments map to the bare operation name.
func (m hashKeyMaker) Key(op string, args ...any) (string, error) {
	if op == "" {
		return "", errors.Join(ErrKey, errors.New("empty operation name"))
	}

	key := op
	if m.namespace != "" {
		key = m.namespace + ":" + op
	}

	if len(args) == 0 {
		return key, nil
	}

	data, err := json.Marshal(args)
	if err != nil {
		return "", errors.Join(ErrKey, err)
	}

	return key + ":" + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

var _ KeyMaker = hashKeyMaker{}

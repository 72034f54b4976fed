package recent

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingState is returned by LoadState when nothing is stored under the key.
	ErrMissingState = errors.New("recent: no stored state")

	// ErrCorruptState is returned by LoadState when the stored value is not a
	// JSON array of strings.
	ErrCorruptState = errors.New("recent: stored state is corrupt")

	// ErrStoreUnavailable matches any *StoreError.
	ErrStoreUnavailable = errors.New("recent: store unavailable")

	ErrInvalidCapacity = errors.New("recent: capacity must be at least 1")
	ErrInvalidKey      = errors.New("recent: storage key must not be empty")
)

// StoreError reports a failed read, write or remove against the backing store.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("recent: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStoreUnavailable) match every StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

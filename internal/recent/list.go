// Package recent tracks the most recently searched terms.
//
// A List is a bounded, duplicate-free sequence of strings ordered most
// recent first. It keeps no state of its own between calls: every
// operation reads or replaces a single JSON array stored under one key of
// a Store, so the store stays the source of truth across runs.
package recent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"
)

const (
	DefaultKey      = "recentWords"
	DefaultCapacity = 8
)

// Store is the key/value capability a List persists through.
// Get reports ok=false when the key is absent.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// List is a most-recently-used list of search terms.
type List struct {
	store    Store
	key      string
	capacity int
	logger   *zap.Logger
}

// Option configures a List.
type Option func(*List)

// WithKey sets the storage key the list is persisted under.
func WithKey(key string) Option {
	return func(l *List) { l.key = key }
}

// WithCapacity sets the maximum number of terms kept.
func WithCapacity(n int) Option {
	return func(l *List) { l.capacity = n }
}

// WithLogger sets the logger used to report swallowed store and decode errors.
func WithLogger(logger *zap.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a List backed by store. It performs no I/O.
func New(store Store, opts ...Option) (*List, error) {
	if store == nil {
		return nil, errors.New("recent: nil store")
	}
	l := &List{
		store:    store,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.key == "" {
		return nil, ErrInvalidKey
	}
	if l.capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, l.capacity)
	}
	return l, nil
}

// Key returns the storage key.
func (l *List) Key() string {
	return l.key
}

// Capacity returns the maximum number of terms kept.
func (l *List) Capacity() int {
	return l.capacity
}

// Load returns the stored terms, most recent first. Missing, corrupt or
// unreadable state all yield an empty list.
func (l *List) Load() []string {
	items, err := l.LoadState()
	switch {
	case err == nil, errors.Is(err, ErrMissingState):
	case errors.Is(err, ErrCorruptState):
		l.logger.Warn("discarding corrupt recent list", zap.String("key", l.key), zap.Error(err))
	default:
		l.logger.Warn("reading recent list", zap.String("key", l.key), zap.Error(err))
	}
	if items == nil {
		items = []string{}
	}
	return items
}

// LoadState is Load with the failure kind exposed. On any error the
// returned slice is empty.
func (l *List) LoadState() ([]string, error) {
	raw, ok, err := l.store.Get(l.key)
	if err != nil {
		return []string{}, &StoreError{Op: "get", Key: l.key, Err: err}
	}
	if !ok {
		return []string{}, ErrMissingState
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// Add moves term to the front of the list, dropping any earlier occurrence
// and evicting the oldest terms beyond capacity, then persists the result.
// The new list is returned even if persisting it failed. An unreadable
// store is never overwritten.
func (l *List) Add(term string) []string {
	items, err := l.AddState(term)
	if err != nil {
		l.logger.Warn("updating recent list", zap.String("key", l.key), zap.Error(err))
	}
	return items
}

// AddState is Add with the store error exposed. If the stored list cannot
// be read, nothing is written and the error is returned with [term].
func (l *List) AddState(term string) ([]string, error) {
	// Invalid UTF-8 would be replaced during encoding.
	term = strings.ToValidUTF8(term, "\uFFFD")

	current, err := l.LoadState()
	switch {
	case err == nil, errors.Is(err, ErrMissingState):
	case errors.Is(err, ErrCorruptState):
		l.logger.Warn("discarding corrupt recent list", zap.String("key", l.key), zap.Error(err))
	default:
		return []string{term}, err
	}
	items := l.push(current, term)

	data, err := json.Marshal(items)
	if err != nil {
		return items, fmt.Errorf("encoding recent list: %w", err)
	}
	if err := l.store.Set(l.key, string(data)); err != nil {
		return items, &StoreError{Op: "set", Key: l.key, Err: err}
	}
	return items, nil
}

// Clear deletes the stored list. Clearing an absent list is not an error.
func (l *List) Clear() {
	if err := l.ClearState(); err != nil {
		l.logger.Warn("clearing recent list", zap.String("key", l.key), zap.Error(err))
	}
}

// ClearState is Clear with the store error exposed.
func (l *List) ClearState() error {
	if err := l.store.Remove(l.key); err != nil {
		return &StoreError{Op: "remove", Key: l.key, Err: err}
	}
	return nil
}

// push replays items oldest first through an LRU of the list's capacity and
// then touches term, so the LRU's newest-to-oldest order is the result.
func (l *List) push(items []string, term string) []string {
	cache, err := simplelru.NewLRU[string, struct{}](l.capacity, nil)
	if err != nil {
		// Only reachable with a non-positive size, which New rejects.
		panic(err)
	}
	for i := len(items) - 1; i >= 0; i-- {
		cache.Add(items[i], struct{}{})
	}
	cache.Add(term, struct{}{})

	keys := cache.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

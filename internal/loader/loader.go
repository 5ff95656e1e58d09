// Package loader implements request-scoped batching and de-duplication of
// repository lookups. Resolvers enqueue keys as the executor walks the
// selection set; keys collected within one batch window flush together in a
// single repository call, collapsing N+1 lookup patterns into one fetch.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// BatchFunc fetches values for a set of keys in one backend call. The result
// must correspond positionally to keys: result[i] answers keys[i]. A missing
// key is answered with the zero value (nil pointer, empty slice), never an
// error.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, error)

// Config tunes loader batching behavior.
type Config struct {
	// Wait is the batch window: time the loader holds the first key of a
	// batch before flushing, letting sibling resolvers join.
	Wait time.Duration
	// MaxBatch caps keys per flush. Zero means unbounded.
	MaxBatch int
}

// DefaultConfig matches the tuning the server uses unless configured
// otherwise.
var DefaultConfig = Config{Wait: time.Millisecond, MaxBatch: 100}

// BatchError wraps the failure of one batch fetch. Every load pending in
// that batch reports it; loads in other batches or loaders are unaffected.
type BatchError struct {
	Loader string
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch fetch failed for loader %s: %v", e.Loader, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Extensions marks the GraphQL error entry with a machine-readable code.
func (e *BatchError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": "BATCH_FETCH_FAILURE"}
}

// Loader batches and caches loads for one named relation within one request.
// It must never be shared across requests: the cache would leak data between
// identities.
type Loader[K comparable, V any] struct {
	name    string
	fetch   BatchFunc[K, V]
	cfg     Config
	observe func(name string, size int)

	mu      sync.Mutex
	cache   map[K]*thunk[V]
	pending *batch[K, V]
}

type thunk[V any] struct {
	done  chan struct{}
	value V
	err   error
}

type batch[K comparable, V any] struct {
	keys   []K
	thunks []*thunk[V]
}

// New creates a loader. observe, if non-nil, is called with the batch size
// on every flush.
func New[K comparable, V any](name string, fetch BatchFunc[K, V], cfg Config, observe func(name string, size int)) *Loader[K, V] {
	if cfg.Wait <= 0 {
		cfg.Wait = DefaultConfig.Wait
	}
	return &Loader[K, V]{
		name:    name,
		fetch:   fetch,
		cfg:     cfg,
		observe: observe,
		cache:   make(map[K]*thunk[V]),
	}
}

// LoadThunk enqueues key and returns a function that blocks until the batch
// containing it has executed. Requesting a key already seen this request
// returns the cached result without a second fetch.
func (l *Loader[K, V]) LoadThunk(ctx context.Context, key K) func() (V, error) {
	l.mu.Lock()
	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return t.get
	}

	t := &thunk[V]{done: make(chan struct{})}
	l.cache[key] = t

	if l.pending == nil {
		b := &batch[K, V]{}
		l.pending = b
		time.AfterFunc(l.cfg.Wait, func() { l.flush(ctx, b) })
	}
	b := l.pending
	b.keys = append(b.keys, key)
	b.thunks = append(b.thunks, t)

	if l.cfg.MaxBatch > 0 && len(b.keys) >= l.cfg.MaxBatch {
		l.pending = nil
		l.mu.Unlock()
		go l.run(ctx, b)
		return t.get
	}

	l.mu.Unlock()
	return t.get
}

// Load fetches one key, blocking until its batch executes.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return l.LoadThunk(ctx, key)()
}

// LoadAll fetches many keys through the batching cache and returns values in
// key order.
func (l *Loader[K, V]) LoadAll(ctx context.Context, keys []K) ([]V, error) {
	thunks := make([]func() (V, error), len(keys))
	for i, key := range keys {
		thunks[i] = l.LoadThunk(ctx, key)
	}
	out := make([]V, len(keys))
	for i, get := range thunks {
		v, err := get()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// flush detaches b if it is still the pending batch and executes it.
func (l *Loader[K, V]) flush(ctx context.Context, b *batch[K, V]) {
	l.mu.Lock()
	if l.pending != b {
		// Already detached by the MaxBatch path.
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.mu.Unlock()
	l.run(ctx, b)
}

func (l *Loader[K, V]) run(ctx context.Context, b *batch[K, V]) {
	if l.observe != nil {
		l.observe(l.name, len(b.keys))
	}

	values, err := l.fetch(ctx, b.keys)
	if err == nil && len(values) != len(b.keys) {
		err = fmt.Errorf("fetch returned %d results for %d keys", len(values), len(b.keys))
	}
	if err != nil {
		berr := &BatchError{Loader: l.name, Err: err}
		for _, t := range b.thunks {
			t.err = berr
			close(t.done)
		}
		return
	}

	for i, t := range b.thunks {
		t.value = values[i]
		close(t.done)
	}
}

func (t *thunk[V]) get() (V, error) {
	<-t.done
	return t.value, t.err
}

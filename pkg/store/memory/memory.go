// Package memory is the mock JSON-backed repository implementation used by
// the demo deployment and the test suite. Records live in process memory;
// seed data is read from JSON files on startup.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmos/gateway/pkg/store"
)

// Collection is a mutex-guarded in-memory repository for one entity type.
// Every read hands out clones so callers can never mutate stored state.
type Collection[T store.Record[T]] struct {
	mu      sync.RWMutex
	records map[string]T
	now     func() time.Time
}

// NewCollection creates an empty collection.
func NewCollection[T store.Record[T]]() *Collection[T] {
	return &Collection[T]{
		records: make(map[string]T),
		now:     time.Now,
	}
}

// FindByID returns the record with the given id, or nil when absent.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	if !ok {
		return zero, nil
	}
	return rec.Clone(), nil
}

// FindByIDs returns one entry per requested id, in request order, with nil
// holes for ids that have no record.
func (c *Collection[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(ids))
	for i, id := range ids {
		if rec, ok := c.records[id]; ok {
			out[i] = rec.Clone()
		}
	}
	return out, nil
}

// FindAll returns a snapshot of every record, ordered by id for determinism.
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID() < out[j].RecordID() })
	return out, nil
}

// Create stores a new record, minting a uuid when the input carries no id,
// and stamps creation/update times.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	stored := rec.Clone()
	if stored.RecordID() == "" {
		stored.SetRecordID(uuid.NewString())
	}
	stored.Touch(c.now(), true)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.records[stored.RecordID()]; exists {
		return zero, fmt.Errorf("%w: %s", store.ErrDuplicateID, stored.RecordID())
	}
	c.records[stored.RecordID()] = stored
	return stored.Clone(), nil
}

// Update applies patch to a copy of the stored record and swaps it in.
// Unpatched fields keep their previous values.
func (c *Collection[T]) Update(ctx context.Context, id string, patch func(T)) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	updated := rec.Clone()
	patch(updated)
	updated.SetRecordID(id)
	updated.Touch(c.now(), false)
	c.records[id] = updated
	return updated.Clone(), nil
}

// Delete removes the record and reports whether it existed.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[id]; !ok {
		return false, nil
	}
	delete(c.records, id)
	return true, nil
}

// Len reports the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// New builds a Stores aggregate backed entirely by in-memory collections.
func New() *store.Stores {
	return &store.Stores{
		Users:        NewCollection[*store.User](),
		Molecules:    NewCollection[*store.Molecule](),
		Projects:     NewCollection[*store.Project](),
		Trials:       NewCollection[*store.ClinicalTrial](),
		Papers:       NewCollection[*store.ResearchPaper](),
		SafetyEvents: NewCollection[*store.SafetyEvent](),
		Predictions:  NewCollection[*store.MLPrediction](),
		Insights:     NewCollection[*store.ResearchInsight](),
	}
}

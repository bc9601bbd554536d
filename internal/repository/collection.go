package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	json "github.com/goccy/go-json"
)

// Collection gives typed whole-collection access to one blob in a Store.
// All writers go through Update, which holds the collection's write lock for
// the full load-modify-save cycle.
type Collection[T any] struct {
	name  string
	store Store
	mu    sync.RWMutex
}

// NewCollection binds a named collection to store.
func NewCollection[T any](store Store, name string) *Collection[T] {
	return &Collection[T]{name: name, store: store}
}

// Load returns every record in the collection. Missing, unreadable or
// malformed data is reported as an empty collection, never as an error.
func (c *Collection[T]) Load(ctx context.Context) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, err := c.load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "collection unreadable, treating as empty", "collection", c.name, "error", err)
		return []T{}
	}
	return records
}

// Save replaces the stored collection with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update loads the collection, passes it to fn and saves whatever fn returns.
// If fn fails nothing is written and its error is returned unchanged. A read
// fault other than a missing collection aborts the update, so a bad read can
// never be saved over the stored records.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.name, err)
	}

	records, err := fn(current)
	if err != nil {
		return err
	}
	return c.save(ctx, records)
}

// load reads and decodes the collection. A missing collection is empty.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.name)
	if err != nil {
		if errors.Is(err, ErrCollectionNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.store.Save(ctx, c.name, data)
}

package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an item ID is not in the store.
var ErrNotFound = errors.New("item not found")

// Store provides read access to the catalog.
type Store interface {
	// Partitions lists partition names in a stable order.
	Partitions(ctx context.Context) ([]string, error)
	// ByPartition returns every item in the partition. An unknown partition
	// yields an empty slice.
	ByPartition(ctx context.Context, partition string) ([]Item, error)
	Get(ctx context.Context, id string) (Item, error)
}

// Writer adds or replaces items.
type Writer interface {
	UpsertBatch(ctx context.Context, items []Item) error
}

// WritableStore is a Store that also accepts writes.
type WritableStore interface {
	Store
	Writer
}

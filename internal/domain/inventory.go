package domain

import (
	"context"
	"time"
)

// InventoryEntry is the merge of a canonical product record and a
// caller-supplied update. Canonical id, ratings and display url are
// stripped during the merge.
type InventoryEntry struct {
	ProductID   string          `json:"id"`
	Brand       string          `json:"brand"`
	Name        string          `json:"name"`
	Quantity    ProductQuantity `json:"quantity"`
	Price       ProductPrice    `json:"price"`
	Barcode     string          `json:"barcode"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

type InventoryMeta struct {
	StoreID     string
	LastUpdated time.Time
}

// InventoryRecord holds the ordered entry list for one store. Revision
// guards the read-merge-write cycle: ReplaceEntries only applies when the
// stored revision still matches the one the record was read at.
type InventoryRecord struct {
	ID       string
	Meta     InventoryMeta
	Entries  []InventoryEntry
	Revision int64
}

type InventoryRepository interface {
	Create(ctx context.Context, record *InventoryRecord) error
	GetByStoreID(ctx context.Context, storeID string) (*InventoryRecord, error)
	// ReplaceEntries swaps the entry list and bumps the revision, conditional
	// on the caller-observed revision. Returns false when nothing matched,
	// either because the record is absent or a concurrent writer won.
	ReplaceEntries(ctx context.Context, storeID string, revision int64, entries []InventoryEntry, at time.Time) (bool, error)
}

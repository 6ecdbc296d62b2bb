package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/logger"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/metrics"
	inventorydto "github.com/darkbluein/locale-store-service/internal/usecase/dto/inventory"
)

type InventoryUsecase interface {
	AddToInventory(ctx context.Context, input *inventorydto.AddToInventoryInput) (bool, error)
	GetInventory(ctx context.Context, token string) (*domain.InventoryRecord, error)
}

type DefaultInventoryUsecase struct {
	InventoryRepo domain.InventoryRepository
	Catalog       domain.ProductCatalog
	StoreRepo     domain.StoreRepository
	Resolver      domain.IdentityResolver
	Bus           domain.UpdateBusPort
	Metrics       *metrics.StoreMetrics
	EventLog      logger.OperationEventLogger
	Locks         *StoreLocks
}

func NewDefaultInventoryUsecase(
	inventoryRepo domain.InventoryRepository,
	catalog domain.ProductCatalog,
	storeRepo domain.StoreRepository,
	resolver domain.IdentityResolver,
	bus domain.UpdateBusPort,
	storeMetrics *metrics.StoreMetrics,
	eventLog logger.OperationEventLogger,
	locks *StoreLocks) *DefaultInventoryUsecase {

	return &DefaultInventoryUsecase{
		InventoryRepo: inventoryRepo,
		Catalog:       catalog,
		StoreRepo:     storeRepo,
		Resolver:      resolver,
		Bus:           bus,
		Metrics:       storeMetrics,
		EventLog:      eventLog,
		Locks:         locks,
	}
}

type barcodeAssignment struct {
	productID string
	barcode   string
}

// AddToInventory merges the update batch into the caller's inventory with
// replace-and-append semantics: a touched product loses its old position
// and moves to the end, in batch order. The whole batch is all-or-nothing:
// nothing is written until every referenced product resolves.
func (uc *DefaultInventoryUsecase) AddToInventory(ctx context.Context, input *inventorydto.AddToInventoryInput) (bool, error) {
	start := time.Now()

	principal, err := uc.Resolver.Resolve(input.Token, true)
	if err != nil {
		return false, err
	}

	unlock := uc.Locks.Lock(principal.ID)
	defer unlock()

	record, err := uc.InventoryRepo.GetByStoreID(ctx, principal.ID)
	if err != nil {
		return false, uc.failOperation(ctx, principal.ID, err)
	}
	if record == nil {
		return false, fmt.Errorf("%w: inventory for store %s", domain.ErrNotFound, principal.ID)
	}

	now := time.Now()
	working := append([]domain.InventoryEntry(nil), record.Entries...)
	var barcodes []barcodeAssignment

	for _, update := range input.Products {
		working = removeEntry(working, update.ID)

		product, err := uc.Catalog.GetByID(ctx, update.ID)
		if err != nil {
			return false, uc.failOperation(ctx, principal.ID, err)
		}
		if product == nil {
			return false, fmt.Errorf("%w: product %s", domain.ErrNotFound, update.ID)
		}

		// a barcode supplied for a product that has none updates the
		// canonical record; an existing barcode is never overwritten
		if update.Barcode != "" && product.Barcode == "" {
			barcodes = append(barcodes, barcodeAssignment{productID: update.ID, barcode: update.Barcode})
		}

		working = append(working, mergeEntry(product, update, now))
	}

	// every product resolved: the list swap may proceed
	modified, err := uc.InventoryRepo.ReplaceEntries(ctx, principal.ID, record.Revision, working, now)
	if err != nil {
		return false, uc.failOperation(ctx, principal.ID, err)
	}

	if modified {
		// barcode side effects land only once the swap has won the
		// revision race; a stale writer leaves the catalog untouched
		for _, assignment := range barcodes {
			if err := uc.Catalog.SetBarcode(ctx, assignment.productID, assignment.barcode); err != nil {
				slog.Error("failed to assign barcode", "product_id", assignment.productID, "error", err.Error())
				continue
			}
			uc.Metrics.BarcodesAssignedTotal.Inc()
		}
		if err := uc.StoreRepo.TouchLastUpdated(ctx, principal.ID, now); err != nil {
			slog.Error("failed to touch store after merge", "store_id", principal.ID, "error", err.Error())
		}
		uc.Bus.Publish(domain.TopicInventoryUpdate, principal.ID, working)
		uc.Metrics.EventsPublishedTotal.WithLabelValues(domain.TopicInventoryUpdate).Inc()
		uc.Metrics.InventoryEntriesMerged.Add(float64(len(input.Products)))
		uc.Metrics.InventoryMergesTotal.WithLabelValues("merged").Inc()
		slog.Info("inventory merged", "store_id", principal.ID, "entries", len(working), "updates", len(input.Products))
	} else {
		uc.Metrics.InventoryMergesTotal.WithLabelValues("noop").Inc()
	}

	uc.Metrics.InventoryMergeDuration.Observe(time.Since(start).Seconds())

	return modified, nil
}

func (uc *DefaultInventoryUsecase) GetInventory(ctx context.Context, token string) (*domain.InventoryRecord, error) {
	principal, err := uc.Resolver.Resolve(token, true)
	if err != nil {
		return nil, err
	}

	record, err := uc.InventoryRepo.GetByStoreID(ctx, principal.ID)
	if err != nil {
		return nil, uc.failOperation(ctx, principal.ID, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: inventory for store %s", domain.ErrNotFound, principal.ID)
	}

	return record, nil
}

// removeEntry drops the entry for the product id, untouched entries keep
// their relative order.
func removeEntry(entries []domain.InventoryEntry, productID string) []domain.InventoryEntry {
	result := entries[:0]
	for _, entry := range entries {
		if entry.ProductID != productID {
			result = append(result, entry)
		}
	}
	return result
}

// mergeEntry overlays the caller-supplied update on the canonical record.
// Canonical id, ratings and display url are stripped.
func mergeEntry(product *domain.ProductRecord, update domain.ProductUpdate, at time.Time) domain.InventoryEntry {
	entry := domain.InventoryEntry{
		ProductID:   update.ID,
		Brand:       product.Brand,
		Name:        product.Name,
		Quantity:    product.Quantity,
		Price:       product.Price,
		Barcode:     product.Barcode,
		LastUpdated: at,
	}

	if update.Name != "" {
		entry.Name = update.Name
	}
	if update.Price != "" {
		entry.Price.MRP = update.Price
	}
	if update.Quantity != nil {
		entry.Quantity = *update.Quantity
	}
	if update.Barcode != "" {
		entry.Barcode = update.Barcode
	}

	return entry
}

func (uc *DefaultInventoryUsecase) failOperation(ctx context.Context, storeID string, err error) error {
	slog.Error("inventory merge failed", "store_id", storeID, "error", err.Error())
	uc.Metrics.OperationErrorsTotal.WithLabelValues("inventory_merge").Inc()
	if logErr := uc.EventLog.LogOperationFailed(ctx, logger.OperationFailedEvent{
		StoreID:   storeID,
		Operation: "inventory_merge",
		Cause:     err.Error(),
		Timestamp: time.Now(),
	}); logErr != nil {
		slog.Error("failed to record operation event", "operation", "inventory_merge", "error", logErr.Error())
	}
	return domain.ErrOperationFailed
}

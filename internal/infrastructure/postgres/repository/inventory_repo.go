package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/postgres/models"
)

type DefaultInventoryRepository struct {
	db *gorm.DB
}

func NewDefaultInventoryRepository(db *gorm.DB) *DefaultInventoryRepository {
	return &DefaultInventoryRepository{db: db}
}

func (r *DefaultInventoryRepository) Create(ctx context.Context, record *domain.InventoryRecord) error {
	entries := record.Entries
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	model := &models.InventoryModel{
		ID:          record.ID,
		StoreID:     record.Meta.StoreID,
		Entries:     string(raw),
		Revision:    record.Revision,
		LastUpdated: record.Meta.LastUpdated,
	}

	return r.db.WithContext(ctx).Create(model).Error
}

func (r *DefaultInventoryRepository) GetByStoreID(ctx context.Context, storeID string) (*domain.InventoryRecord, error) {
	var model models.InventoryModel
	if err := r.db.WithContext(ctx).First(&model, "store_id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return toInventoryDomain(&model)
}

// ReplaceEntries is a compare-and-swap on the revision column. A writer
// holding a stale revision matches zero rows and reports no modification
// instead of clobbering a concurrent merge.
func (r *DefaultInventoryRepository) ReplaceEntries(ctx context.Context, storeID string, revision int64, entries []domain.InventoryEntry, at time.Time) (bool, error) {
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("failed to marshal entries: %w", err)
	}

	res := r.db.WithContext(ctx).Model(&models.InventoryModel{}).
		Where("store_id = ? AND revision = ?", storeID, revision).
		Updates(map[string]interface{}{
			"entries":      string(raw),
			"revision":     revision + 1,
			"last_updated": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func toInventoryDomain(model *models.InventoryModel) (*domain.InventoryRecord, error) {
	var entries []domain.InventoryEntry
	if model.Entries != "" {
		if err := json.Unmarshal([]byte(model.Entries), &entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
		}
	}

	return &domain.InventoryRecord{
		ID: model.ID,
		Meta: domain.InventoryMeta{
			StoreID:     model.StoreID,
			LastUpdated: model.LastUpdated,
		},
		Entries:  entries,
		Revision: model.Revision,
	}, nil
}

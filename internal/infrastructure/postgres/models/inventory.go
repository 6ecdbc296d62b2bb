package models

import "time"

type InventoryModel struct {
	ID          string `gorm:"primaryKey"`
	StoreID     string `gorm:"uniqueIndex:idx_inventory_store;type:uuid;not null"`
	Entries     string `gorm:"type:jsonb;default:'[]'"`
	Revision    int64  `gorm:"not null;default:0"`
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (InventoryModel) TableName() string {
	return "inventories"
}

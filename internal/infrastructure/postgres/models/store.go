package models

import (
	"time"

	"gorm.io/gorm"
)

type StoreModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Name            string
	ContactISD      string
	ContactNumber   string `gorm:"uniqueIndex:idx_store_contact_number;not null"`
	UPIValue        string
	UPIDisplay      string
	UPILastUpdated  time.Time
	AddressLine     string
	GeoHash         string
	Latitude        string
	Longitude       string
	Verified        bool `gorm:"default:false"`
	Closed          bool `gorm:"default:false"`
	LicenseHash     string
	MetaLastUpdated time.Time
	Accounts        string `gorm:"type:jsonb;default:'[]'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (StoreModel) TableName() string {
	return "stores"
}

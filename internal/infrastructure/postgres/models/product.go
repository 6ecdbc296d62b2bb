package models

import "time"

type ProductModel struct {
	ID            string `gorm:"primaryKey"`
	Brand         string `gorm:"index:idx_product_brand"`
	Name          string `gorm:"not null"`
	URL           string
	FetchURI      string
	QuantityUnits int
	QuantityCount string
	QuantityType  string
	Barcode       string `gorm:"index:idx_product_barcode"`
	PriceMRP      string `gorm:"not null"`
	PriceDiscount string
	Ratings       string `gorm:"type:jsonb;default:'[]'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

package domain

import (
	"context"
	"time"
)

type ProductQuantity struct {
	Units int    `json:"units"`
	Count string `json:"count"`
	Type  string `json:"type"`
}

type ProductPrice struct {
	MRP      string `json:"mrp"`
	Discount string `json:"discount"`
}

type ProductRecord struct {
	ID        string
	Brand     string
	Name      string
	URL       string
	FetchURI  string
	Quantity  ProductQuantity
	Barcode   string
	Price     ProductPrice
	Ratings   []int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductUpdate is the caller-supplied half of an inventory merge.
type ProductUpdate struct {
	ID       string
	Name     string
	Price    string
	Barcode  string
	Quantity *ProductQuantity
}

type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*ProductRecord, error)
	SetBarcode(ctx context.Context, id, barcode string) error
}

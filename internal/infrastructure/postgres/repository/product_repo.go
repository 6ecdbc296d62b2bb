package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/postgres/models"
)

type DefaultProductCatalog struct {
	db *gorm.DB
}

func NewDefaultProductCatalog(db *gorm.DB) *DefaultProductCatalog {
	return &DefaultProductCatalog{db: db}
}

func (r *DefaultProductCatalog) GetByID(ctx context.Context, id string) (*domain.ProductRecord, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return toProductDomain(&model)
}

func (r *DefaultProductCatalog) SetBarcode(ctx context.Context, id, barcode string) error {
	return r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("id = ?", id).
		Update("barcode", barcode).Error
}

func toProductDomain(model *models.ProductModel) (*domain.ProductRecord, error) {
	var ratings []int
	if model.Ratings != "" {
		if err := json.Unmarshal([]byte(model.Ratings), &ratings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ratings: %w", err)
		}
	}

	return &domain.ProductRecord{
		ID:       model.ID,
		Brand:    model.Brand,
		Name:     model.Name,
		URL:      model.URL,
		FetchURI: model.FetchURI,
		Quantity: domain.ProductQuantity{
			Units: model.QuantityUnits,
			Count: model.QuantityCount,
			Type:  model.QuantityType,
		},
		Barcode: model.Barcode,
		Price: domain.ProductPrice{
			MRP:      model.PriceMRP,
			Discount: model.PriceDiscount,
		},
		Ratings:   ratings,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

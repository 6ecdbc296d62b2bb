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

type DefaultStoreRepository struct {
	db *gorm.DB
}

func NewDefaultStoreRepository(db *gorm.DB) *DefaultStoreRepository {
	return &DefaultStoreRepository{db: db}
}

func (r *DefaultStoreRepository) Create(ctx context.Context, store *domain.StoreProfile) error {
	model, err := toStoreModel(store)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return domain.ErrContactTaken
		}
		return err
	}
	return nil
}

func (r *DefaultStoreRepository) GetByID(ctx context.Context, id string) (*domain.StoreProfile, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return toStoreDomain(&model)
}

func (r *DefaultStoreRepository) GetByContactNumber(ctx context.Context, number string) (*domain.StoreProfile, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "contact_number = ?", number).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return toStoreDomain(&model)
}

// UpdateFields is the findByIdAndUpdate of the edit path: the whole field
// set is written and the post-update record is read back in one transaction.
func (r *DefaultStoreRepository) UpdateFields(ctx context.Context, id string, set domain.StoreFieldSet) (*domain.StoreProfile, error) {
	var updated *models.StoreModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StoreModel{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":              set.Name,
			"contact_isd":       set.Contact.ISD,
			"contact_number":    set.Contact.Number,
			"upi_value":         set.UPI.Value,
			"upi_display":       set.UPI.Display,
			"upi_last_updated":  set.UPI.LastUpdated,
			"address_line":      set.Address.Line,
			"geo_hash":          set.Address.Location.Hash,
			"latitude":          set.Address.Location.Coordinates[0],
			"longitude":         set.Address.Location.Coordinates[1],
			"license_hash":      set.LicenseHash,
			"meta_last_updated": set.LastUpdated,
		})
		if res.Error != nil {
			if res.Error == gorm.ErrDuplicatedKey {
				return domain.ErrContactTaken
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var model models.StoreModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return err
		}
		updated = &model
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	return toStoreDomain(updated)
}

func (r *DefaultStoreRepository) SetVerified(ctx context.Context, id string, verified bool, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.StoreModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"verified":          verified,
		"meta_last_updated": at,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultStoreRepository) SaveAccounts(ctx context.Context, id string, accounts []domain.StoreAccount, at time.Time) (bool, error) {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return false, fmt.Errorf("failed to marshal accounts: %w", err)
	}

	res := r.db.WithContext(ctx).Model(&models.StoreModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"accounts":          string(raw),
		"meta_last_updated": at,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultStoreRepository) TouchLastUpdated(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.StoreModel{}).Where("id = ?", id).
		Update("meta_last_updated", at).Error
}

func toStoreModel(store *domain.StoreProfile) (*models.StoreModel, error) {
	accounts := store.Accounts
	if accounts == nil {
		accounts = []domain.StoreAccount{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal accounts: %w", err)
	}

	return &models.StoreModel{
		ID:              store.ID,
		Name:            store.Name,
		ContactISD:      store.Contact.ISD,
		ContactNumber:   store.Contact.Number,
		UPIValue:        store.UPI.Value,
		UPIDisplay:      store.UPI.Display,
		UPILastUpdated:  store.UPI.LastUpdated,
		AddressLine:     store.Address.Line,
		GeoHash:         store.Address.Location.Hash,
		Latitude:        store.Address.Location.Coordinates[0],
		Longitude:       store.Address.Location.Coordinates[1],
		Verified:        store.Meta.Verified,
		Closed:          store.Meta.Closed,
		LicenseHash:     store.Meta.LicenseHash,
		MetaLastUpdated: store.Meta.LastUpdated,
		Accounts:        string(raw),
		CreatedAt:       store.CreatedAt,
		UpdatedAt:       store.UpdatedAt,
	}, nil
}

func toStoreDomain(model *models.StoreModel) (*domain.StoreProfile, error) {
	var accounts []domain.StoreAccount
	if model.Accounts != "" {
		if err := json.Unmarshal([]byte(model.Accounts), &accounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
		}
	}

	return &domain.StoreProfile{
		ID:   model.ID,
		Name: model.Name,
		Contact: domain.Contact{
			ISD:    model.ContactISD,
			Number: model.ContactNumber,
		},
		UPI: domain.UPI{
			Value:       model.UPIValue,
			Display:     model.UPIDisplay,
			LastUpdated: model.UPILastUpdated,
		},
		Address: domain.Address{
			Line: model.AddressLine,
			Location: domain.Point{
				Hash:        model.GeoHash,
				Coordinates: [2]string{model.Latitude, model.Longitude},
			},
		},
		Meta: domain.StoreMeta{
			Verified:    model.Verified,
			Closed:      model.Closed,
			LicenseHash: model.LicenseHash,
			LastUpdated: model.MetaLastUpdated,
		},
		Accounts:  accounts,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

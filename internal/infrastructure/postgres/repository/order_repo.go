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

type DefaultOrderRepository struct {
	db *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{db: db}
}

func (r *DefaultOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model, err := toOrderModel(order)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *DefaultOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return toOrderDomain(&model)
}

func (r *DefaultOrderRepository) ListByStoreCreatedSince(ctx context.Context, storeID string, since time.Time) ([]*domain.Order, error) {
	var orderModels []*models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND created_at >= ?", storeID, since).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(orderModels))
	for _, model := range orderModels {
		order, err := toOrderDomain(model)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func toOrderModel(order *domain.Order) (*models.OrderModel, error) {
	products := order.Products
	if products == nil {
		products = []domain.OrderProduct{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order products: %w", err)
	}

	return &models.OrderModel{
		ID:              order.ID,
		UserID:          order.Meta.UserID,
		StoreID:         order.Meta.StoreID,
		LinkedAccount:   order.LinkedAccount,
		Products:        string(raw),
		Message:         order.State.Message,
		Accepted:        order.State.Accepted,
		Cancelled:       order.State.Cancelled,
		StateDate:       order.State.Date,
		PaymentMethod:   order.State.Payment.Method,
		Paid:            order.State.Payment.Paid,
		GrandAmount:     order.State.Payment.GrandAmount,
		ToDeliver:       order.State.Delivery.ToDeliver,
		DeliveryAddress: order.State.Delivery.Address,
		DeliverBy:       order.State.Delivery.DeliverBy,
		CreatedAt:       order.State.CreatedAt,
	}, nil
}

func toOrderDomain(model *models.OrderModel) (*domain.Order, error) {
	var products []domain.OrderProduct
	if model.Products != "" {
		if err := json.Unmarshal([]byte(model.Products), &products); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order products: %w", err)
		}
	}

	return &domain.Order{
		ID:            model.ID,
		Products:      products,
		LinkedAccount: model.LinkedAccount,
		Meta: domain.OrderMeta{
			UserID:  model.UserID,
			StoreID: model.StoreID,
		},
		State: domain.OrderState{
			CreatedAt: model.CreatedAt,
			Message:   model.Message,
			Accepted:  model.Accepted,
			Cancelled: model.Cancelled,
			Date:      model.StateDate,
			Payment: domain.OrderPayment{
				Method:      model.PaymentMethod,
				Paid:        model.Paid,
				GrandAmount: model.GrandAmount,
			},
			Delivery: domain.OrderDelivery{
				ToDeliver: model.ToDeliver,
				Address:   model.DeliveryAddress,
				DeliverBy: model.DeliverBy,
			},
		},
	}, nil
}

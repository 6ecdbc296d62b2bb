package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/darkbluein/locale-store-service/internal/domain"
	orderdto "github.com/darkbluein/locale-store-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

// DefaultOrderUsecase builds the derived order record from catalog
// lookups. Deliberately simple: no settlement, no fulfillment workflow.
type DefaultOrderUsecase struct {
	OrderRepo domain.OrderRepository
	Catalog   domain.ProductCatalog
	Resolver  domain.IdentityResolver
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	catalog domain.ProductCatalog,
	resolver domain.IdentityResolver) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo: orderRepo,
		Catalog:   catalog,
		Resolver:  resolver,
	}
}

func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	principal, err := uc.Resolver.Resolve(input.Token, false)
	if err != nil {
		return nil, err
	}

	products := make([]domain.OrderProduct, 0, len(input.Items))
	var grandAmount float64

	for _, item := range input.Items {
		if item.InStore {
			continue
		}

		product, err := uc.Catalog.GetByID(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", item.ID, err)
		}
		if product == nil {
			continue
		}

		mrp, err := strconv.ParseFloat(product.Price.MRP, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad price on product %s", domain.ErrValidation, item.ID)
		}
		total := float64(item.Quantity) * mrp

		products = append(products, domain.OrderProduct{
			ID:          product.ID,
			Brand:       product.Brand,
			Name:        product.Name,
			URL:         product.URL,
			Price:       product.Price,
			Quantity:    item.Quantity,
			TotalAmount: strconv.FormatFloat(total, 'f', 2, 64),
		})
		grandAmount += total
	}

	id, err := newRecordID()
	if err != nil {
		return nil, fmt.Errorf("failed to assign order id: %w", err)
	}

	now := time.Now()
	order := &domain.Order{
		ID:            id,
		Products:      products,
		LinkedAccount: input.AccountID,
		Meta: domain.OrderMeta{
			UserID:  principal.ID,
			StoreID: input.StoreID,
		},
		State: domain.OrderState{
			CreatedAt: now,
			Message:   "Order successfully created",
			Date:      now,
			Payment: domain.OrderPayment{
				Method: input.Method,
			},
			Delivery: domain.OrderDelivery{
				ToDeliver: input.Delivery,
			},
		},
	}

	if input.InStore {
		order.State.Delivery.ToDeliver = false
		order.State.Delivery.DeliverBy = nil
	} else {
		order.State.Payment.Paid = false
		order.State.Payment.GrandAmount = strconv.FormatFloat(grandAmount, 'f', 2, 64)
		if input.DeliverBy > 0 {
			deliverBy := now.Add(input.DeliverBy)
			order.State.Delivery.DeliverBy = &deliverBy
		}
	}

	if err := uc.OrderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	return order, nil
}

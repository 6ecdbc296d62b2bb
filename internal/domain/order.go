package domain

import (
	"context"
	"time"
)

type OrderProduct struct {
	ID          string       `json:"id"`
	Brand       string       `json:"brand"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Price       ProductPrice `json:"price"`
	Quantity    int          `json:"quantity"`
	TotalAmount string       `json:"totalAmount"`
}

type OrderMeta struct {
	UserID  string
	StoreID string
}

type OrderPayment struct {
	Method      string
	Paid        bool
	GrandAmount string
}

type OrderDelivery struct {
	ToDeliver bool
	Address   string
	DeliverBy *time.Time
}

type OrderState struct {
	CreatedAt time.Time
	Message   string
	Accepted  bool
	Cancelled bool
	Date      time.Time
	Payment   OrderPayment
	Delivery  OrderDelivery
}

type Order struct {
	ID            string
	Products      []OrderProduct
	LinkedAccount string
	Meta          OrderMeta
	State         OrderState
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByStoreCreatedSince(ctx context.Context, storeID string, since time.Time) ([]*Order, error)
}

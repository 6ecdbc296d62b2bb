package orderdto

import "time"

type OrderItemInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	InStore  bool   `json:"inStore"`
}

type CreateOrderInput struct {
	Token     string
	StoreID   string
	AccountID string
	Items     []OrderItemInput
	Method    string
	Delivery  bool
	DeliverBy time.Duration
	InStore   bool
}

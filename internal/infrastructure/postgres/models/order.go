package models

import "time"

type OrderModel struct {
	ID              string `gorm:"primaryKey"`
	UserID          string `gorm:"index:idx_order_user"`
	StoreID         string `gorm:"index:idx_order_store_created;type:uuid"`
	LinkedAccount   string
	Products        string `gorm:"type:jsonb;default:'[]'"`
	Message         string
	Accepted        bool `gorm:"default:false"`
	Cancelled       bool `gorm:"default:false"`
	StateDate       time.Time
	PaymentMethod   string
	Paid            bool `gorm:"default:false"`
	GrandAmount     string
	ToDeliver       bool
	DeliveryAddress string
	DeliverBy       *time.Time
	CreatedAt       time.Time `gorm:"index:idx_order_store_created"`
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

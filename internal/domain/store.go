package domain

import (
	"context"
	"time"
)

type Point struct {
	Hash        string
	Coordinates [2]string
}

type Contact struct {
	ISD    string
	Number string
}

type UPI struct {
	Value       string
	Display     string
	LastUpdated time.Time
}

type Address struct {
	Line     string
	Location Point
}

type StoreMeta struct {
	Verified    bool
	Closed      bool
	LicenseHash string
	LastUpdated time.Time
}

type AccountOrderRef struct {
	OrderID string `json:"orderId"`
	Paid    bool   `json:"paid"`
	Date    string `json:"date"`
	Amount  string `json:"amount"`
}

type AccountPending struct {
	Status bool   `json:"status"`
	Amount string `json:"amount"`
}

type StoreAccount struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Contact     Contact           `json:"contact"`
	Closed      bool              `json:"closed"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Orders      []AccountOrderRef `json:"orders"`
	Pending     AccountPending    `json:"pending"`
}

type StoreProfile struct {
	ID        string
	Name      string
	Contact   Contact
	UPI       UPI
	Address   Address
	Meta      StoreMeta
	Accounts  []StoreAccount
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreFieldSet is the field-level update applied by the edit path. The
// whole set is written: absent values overwrite, they do not patch.
type StoreFieldSet struct {
	Name        string
	Contact     Contact
	UPI         UPI
	Address     Address
	LicenseHash string
	LastUpdated time.Time
}

type StoreRepository interface {
	Create(ctx context.Context, store *StoreProfile) error
	GetByID(ctx context.Context, id string) (*StoreProfile, error)
	GetByContactNumber(ctx context.Context, number string) (*StoreProfile, error)
	// UpdateFields applies the field set to the store with the given id and
	// returns the post-update record. (nil, nil) means no record matched.
	UpdateFields(ctx context.Context, id string, set StoreFieldSet) (*StoreProfile, error)
	SetVerified(ctx context.Context, id string, verified bool, at time.Time) (bool, error)
	SaveAccounts(ctx context.Context, id string, accounts []StoreAccount, at time.Time) (bool, error)
	TouchLastUpdated(ctx context.Context, id string, at time.Time) error
}

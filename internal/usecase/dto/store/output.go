package storedto

import (
	"time"

	"github.com/darkbluein/locale-store-service/internal/domain"
)

// EditStoreResult is a tagged result: Updated=false with a nil Store means
// the edit matched no record and nothing was published.
type EditStoreResult struct {
	Store        *domain.StoreProfile
	Token        string
	RefreshToken string
	Updated      bool
}

type StoreStat struct {
	Amount       string `json:"amount"`
	Count        int    `json:"count"`
	Error        bool   `json:"error"`
	ErrorMessage string `json:"errorMessage"`
}

type StoreOutput struct {
	Store *domain.StoreProfile
	Stat  StoreStat
}

type ConfirmStatus struct {
	Closed bool `json:"closed"`
}

type ConfirmAccount struct {
	Exists bool      `json:"exists"`
	Closed bool      `json:"closed"`
	Amount string    `json:"amount"`
	Date   time.Time `json:"date"`
}

type ConfirmOutput struct {
	Name    string         `json:"name"`
	Status  ConfirmStatus  `json:"status"`
	Account ConfirmAccount `json:"account"`
}

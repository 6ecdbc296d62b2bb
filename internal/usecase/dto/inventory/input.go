package inventorydto

import "github.com/darkbluein/locale-store-service/internal/domain"

type AddToInventoryInput struct {
	Token    string
	Products []domain.ProductUpdate
}

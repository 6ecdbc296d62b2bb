package setup

import (
	"github.com/darkbluein/locale-store-service/internal/usecase"
)

type Usecases struct {
	Store     usecase.StoreUsecase
	Inventory usecase.InventoryUsecase
	Order     usecase.OrderUsecase
}

func InitializeUsecases(deps *Dependencies) *Usecases {
	locks := usecase.NewStoreLocks()

	storeUsecase := usecase.NewDefaultStoreUsecase(
		deps.Repos.StoreRepo,
		deps.Repos.InventoryRepo,
		deps.Repos.OrderRepo,
		deps.JWT,
		deps.JWT,
		deps.Hasher,
		deps.Points,
		deps.Handles,
		deps.Bus,
		deps.Metrics,
		deps.EventLog,
		locks,
	)

	inventoryUsecase := usecase.NewDefaultInventoryUsecase(
		deps.Repos.InventoryRepo,
		deps.Repos.Catalog,
		deps.Repos.StoreRepo,
		deps.JWT,
		deps.Bus,
		deps.Metrics,
		deps.EventLog,
		locks,
	)

	orderUsecase := usecase.NewDefaultOrderUsecase(
		deps.Repos.OrderRepo,
		deps.Repos.Catalog,
		deps.JWT,
	)

	return &Usecases{
		Store:     storeUsecase,
		Inventory: inventoryUsecase,
		Order:     orderUsecase,
	}
}

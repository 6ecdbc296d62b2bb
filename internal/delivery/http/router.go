package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darkbluein/locale-store-service/internal/delivery/http/handlers"
)

type Handlers struct {
	Store        *handlers.StoreHandler
	Inventory    *handlers.InventoryHandler
	Order        *handlers.OrderHandler
	Subscription *handlers.SubscriptionHandler
}

func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/store", h.Store.GetStore)
	r.Post("/store/edit", h.Store.EditStore)
	r.Post("/store/verify", h.Store.VerifyStore)
	r.Get("/store/{storeId}/confirmation", h.Store.GetConfirmation)
	r.Post("/store/accounts", h.Store.AddAccount)

	r.Get("/inventory", h.Inventory.GetInventory)
	r.Post("/inventory", h.Inventory.AddToInventory)

	r.Post("/orders", h.Order.CreateOrder)

	r.Get("/subscriptions/store/{id}", h.Subscription.StoreUpdates)
	r.Get("/subscriptions/inventory/{id}", h.Subscription.InventoryUpdates)

	r.Handle("/metrics", promhttp.Handler())

	return r
}

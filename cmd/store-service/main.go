package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/darkbluein/locale-store-service/internal/app/background"
	"github.com/darkbluein/locale-store-service/internal/app/setup"
	delivery "github.com/darkbluein/locale-store-service/internal/delivery/http"
	"github.com/darkbluein/locale-store-service/internal/delivery/http/handlers"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	// Init dependencies
	deps, err := setup.InitializeDependencies()
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}

	if path := deps.Config.StoreDB.MigrationsPath; path != "" {
		if err := migrate.RunMigrations(deps.DB, path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init usecases
	usecases := setup.InitializeUsecases(deps)

	// Kafka mirror worker
	tasks := background.NewBackgroundTasks(deps.Mirror)
	tasks.StartAll(context.Background())

	router := delivery.NewRouter(delivery.Handlers{
		Store:        handlers.NewStoreHandler(usecases.Store),
		Inventory:    handlers.NewInventoryHandler(usecases.Inventory),
		Order:        handlers.NewOrderHandler(usecases.Order),
		Subscription: handlers.NewSubscriptionHandler(deps.Bus),
	})

	addr := fmt.Sprintf("%s:%s", deps.Config.HTTPServer.Host, deps.Config.HTTPServer.Port)
	log.Printf("store service started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

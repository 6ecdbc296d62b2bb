package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/darkbluein/locale-store-service/internal/config"
	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/auth"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/bus"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/geo"
	publisher "github.com/darkbluein/locale-store-service/internal/infrastructure/kafka"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/logger"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/metrics"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/postgres"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/postgres/repository"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/upi"
)

type Dependencies struct {
	Config    *config.StoreConfig
	DB        *gorm.DB
	Bus       *bus.UpdateBus
	Mirror    *publisher.EventMirror
	JWT       *auth.JWTManager
	Hasher    *auth.BcryptLicenseHasher
	Points    *geo.GeohashEncoder
	Handles   *upi.Encoder
	Metrics   *metrics.StoreMetrics
	EventLog  logger.OperationEventLogger
	Repos     *Repositories
}

type Repositories struct {
	StoreRepo     domain.StoreRepository
	InventoryRepo domain.InventoryRepository
	Catalog       domain.ProductCatalog
	OrderRepo     domain.OrderRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	updateBus := bus.NewUpdateBus()

	var mirror *publisher.EventMirror
	if cfg.KafkaService.Enabled {
		topic := cfg.KafkaService.Topic
		if topic == "" {
			topic = "store-events"
		}
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		mirror = publisher.NewEventMirror(updateBus, publisher.NewDefaultKafkaPublisher(brokers, topic))
	}

	repos := &Repositories{
		StoreRepo:     repository.NewDefaultStoreRepository(db),
		InventoryRepo: repository.NewDefaultInventoryRepository(db),
		Catalog:       repository.NewDefaultProductCatalog(db),
		OrderRepo:     repository.NewDefaultOrderRepository(db),
	}

	return &Dependencies{
		Config:   cfg,
		DB:       db,
		Bus:      updateBus,
		Mirror:   mirror,
		JWT:      auth.NewJWTManager(cfg.Auth),
		Hasher:   auth.NewBcryptLicenseHasher(),
		Points:   geo.NewGeohashEncoder(cfg.Geo.Precision),
		Handles:  upi.NewEncoder(),
		Metrics:  metrics.NewStoreMetrics(),
		EventLog: logger.NewPGOperationEventLogger(db),
		Repos:    repos,
	}, nil
}

package postgres

import (
	"log"

	"github.com/darkbluein/locale-store-service/internal/config"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.StoreConfig) *gorm.DB {
	dsn := cfg.StoreDB.Dsn
	// TranslateError maps the contact-number unique violation to gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.StoreModel{}, &models.InventoryModel{}, &models.ProductModel{}, &models.OrderModel{})

	return db
}

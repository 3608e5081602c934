package infra

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripforge/internal/config"
	"tripforge/internal/models/db_models"
)

func InitPostgresql(cfg config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	if err := db.AutoMigrate(&db_models.Itinerary{}); err != nil {
		log.Fatalf("migrating schema: %v", err)
	}

	return db
}

func ClosePostgresql(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("getting database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Errorf("closing database connection: %v", err)
	}
}

package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Raihanhn/event-saas/config"
	"github.com/Raihanhn/event-saas/models"
)

var DB *gorm.DB

// Connect opens the database and migrates the schema. A missing database is
// a hard failure at startup.
func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Event{},
		&models.Task{},
		&models.Budget{},
		&models.BudgetSubcategory{},
		&models.BudgetVendorShare{},
		&models.Vendor{},
		&models.Client{},
		&models.Template{},
		&models.TemplateItem{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

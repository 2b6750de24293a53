// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Raihanhn/event-saas/config"
	"github.com/Raihanhn/event-saas/database"
	"github.com/Raihanhn/event-saas/models"
)

// Bootstraps a first organization with its admin account. Intended for local
// setups where nobody wants to go through the signup endpoint.
func main() {
	cfg := config.Load()
	database.Connect(cfg)

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	password := envOr("ADMIN_PASSWORD", "changeme123")
	orgName := envOr("ORG_NAME", "My Organization")

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists:", email)
		os.Exit(0)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		org := models.Organization{Name: orgName}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		u := models.User{
			Name:           "Admin",
			Email:          email,
			Password:       string(hashed),
			Role:           "admin",
			OrganizationID: org.ID,
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		return tx.Model(&org).Update("admin_id", u.ID).Error
	})
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Println("admin user created:", email)
	fmt.Println("password:", password, "(change it after first login)")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"p9e.in/marops/models"
)

// SeedAdminUser creates the initial MASTER account when the users
// table is empty. Password comes from ADMIN_PASSWORD; without it the
// seed is skipped so a production boot never gets a default credential.
func SeedAdminUser() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Warning: could not check users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: could not hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        "admin@marops.local",
		PasswordHash: string(hash),
		Role:         models.RoleMaster,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not seed admin user: %v", err)
		return
	}
	log.Println("Seeded initial MASTER user", admin.Email)
}

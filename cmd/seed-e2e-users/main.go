/*
Package main - E2E Test User Seeder

==============================================================================
FILE: cmd/seed-e2e-users/main.go
==============================================================================

DESCRIPTION:
    Creates one demo carrier and one user per role (admin, analyst, viewer)
    so end-to-end test suites have stable credentials to log in with.
    Idempotent: re-running updates the existing users rather than erroring.

USAGE:
    go run cmd/seed-e2e-users/main.go

PASSWORD:
    All seeded users share the password printed at the end of the run.

==============================================================================
*/
package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/config"
	"github.com/mergeops/seniority-engine/internal/database"
	"github.com/mergeops/seniority-engine/internal/models"
	"github.com/mergeops/seniority-engine/internal/models/enums"
)

const testPassword = "Test123456!"

func main() {
	fmt.Println("seeding e2e test carrier and users...")

	cfg, err := config.LoadAppConfig("./configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.DBDriver)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	carrier := getOrCreateTestCarrier(db)

	testUsers := []struct {
		Email    string
		FullName string
		Role     enums.UserRole
	}{
		{"e2e.admin@test.com", "E2E Admin User", enums.RoleAdmin},
		{"e2e.analyst@test.com", "E2E Analyst User", enums.RoleAnalyst},
		{"e2e.viewer@test.com", "E2E Viewer User", enums.RoleViewer},
	}

	fmt.Println("\ncreating test users...")
	createdCount := 0
	updatedCount := 0

	for _, userData := range testUsers {
		var existingUser models.User
		result := db.Where("email = ?", userData.Email).First(&existingUser)

		if result.Error == nil {
			existingUser.Role = userData.Role
			existingUser.FullName = userData.FullName
			existingUser.IsActive = true
			existingUser.CarrierID = carrier.ID
			if err := existingUser.SetPassword(testPassword); err != nil {
				log.Printf("failed to hash password for %s: %v", userData.Email, err)
				continue
			}

			if err := db.Save(&existingUser).Error; err != nil {
				log.Printf("failed to update %s: %v", userData.Email, err)
				continue
			}
			fmt.Printf("  updated: %-30s (role: %s)\n", userData.Email, userData.Role)
			updatedCount++
		} else if result.Error == gorm.ErrRecordNotFound {
			user := models.User{
				BaseModel: models.BaseModel{ID: uuid.New()},
				Email:     userData.Email,
				Role:      userData.Role,
				FullName:  userData.FullName,
				IsActive:  true,
				CarrierID: carrier.ID,
			}
			if err := user.SetPassword(testPassword); err != nil {
				log.Printf("failed to hash password for %s: %v", userData.Email, err)
				continue
			}

			if err := db.Create(&user).Error; err != nil {
				log.Printf("failed to create %s: %v", userData.Email, err)
				continue
			}
			fmt.Printf("  created: %-30s (role: %s)\n", userData.Email, userData.Role)
			createdCount++
		} else {
			log.Printf("error checking %s: %v", userData.Email, result.Error)
		}
	}

	fmt.Printf("\nseed complete: %d created, %d updated, %d total\n", createdCount, updatedCount, len(testUsers))
	printCredentials(testUsers)
}

func getOrCreateTestCarrier(db *gorm.DB) *models.Carrier {
	var carrier models.Carrier
	result := db.Where("code = ?", "E2ETEST").First(&carrier)

	if result.Error == gorm.ErrRecordNotFound {
		carrier = models.Carrier{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Name:      "E2E Test Carrier",
			Code:      "E2ETEST",
			Email:     "contact@e2etest.example",
			IsActive:  true,
		}
		if err := db.Create(&carrier).Error; err != nil {
			log.Fatalf("failed to create test carrier: %v", err)
		}
		fmt.Println("created test carrier: E2E Test Carrier")
	} else if result.Error != nil {
		log.Fatalf("failed to query carrier: %v", result.Error)
	} else {
		fmt.Println("using existing test carrier: E2E Test Carrier")
	}

	return &carrier
}

func printCredentials(users []struct {
	Email    string
	FullName string
	Role     enums.UserRole
}) {
	fmt.Println("\ntest credentials (all share the same password):")
	fmt.Printf("password: %s\n\n", testPassword)
	for _, user := range users {
		fmt.Printf("%-30s  ->  %-10s  (%s)\n", user.Email, user.Role, user.FullName)
	}
}

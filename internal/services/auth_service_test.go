package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/config"
	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/models"
	"github.com/mergeops/seniority-engine/internal/models/enums"
)

func setupAuthServiceTest(t *testing.T) *AuthService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Carrier{}, &models.User{}, &models.ScenarioRun{}))

	appConfig := &config.AppConfig{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(db, appConfig)
}

func TestLoginReportsActiveScenarioRuns(t *testing.T) {
	svc := setupAuthServiceTest(t)

	registerResp, err := svc.Register(dtos.RegisterRequest{
		CarrierName: "Test Carrier",
		CarrierCode: "TC1",
		Email:       "admin@test.com",
		Password:    "Passw0rd!",
		Role:        enums.RoleAdmin,
		FullName:    "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), registerResp.ActiveScenarioRuns)

	var createdUser models.User
	require.NoError(t, svc.db.Where("email = ?", "admin@test.com").First(&createdUser).Error)

	run := &models.ScenarioRun{CarrierID: createdUser.CarrierID, Name: "s1", Status: models.ScenarioStatusRunning}
	require.NoError(t, svc.db.Create(run).Error)

	loginResp, err := svc.Login(dtos.LoginRequest{Email: "admin@test.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), loginResp.ActiveScenarioRuns)
}

package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mergeops/seniority-engine/internal/models"
)

func setupUserServiceTest(t *testing.T) (*gorm.DB, *UserService, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Carrier{}, &models.User{}, &models.EmployeeRecord{}))

	carrier := &models.Carrier{Name: "Test Carrier", Code: "TC1"}
	require.NoError(t, db.Create(carrier).Error)

	return db, NewUserService(db), carrier.ID
}

func makeEmployee(t *testing.T, db *gorm.DB, carrierID uuid.UUID, empkey string, order int) *models.EmployeeRecord {
	emp := &models.EmployeeRecord{
		Empkey:        empkey,
		EG:            1,
		DOB:           time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		LongevityDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		RetDate:       time.Date(2045, 1, 1, 0, 0, 0, 0, time.UTC),
		Order:         order,
		FullName:      "Test Employee",
		CarrierID:     carrierID,
	}
	require.NoError(t, db.Create(emp).Error)
	return emp
}

func TestCreateUserWithEmployeeLink(t *testing.T) {
	db, svc, carrierID := setupUserServiceTest(t)
	emp := makeEmployee(t, db, carrierID, "E0001", 1)

	dto, err := svc.CreateUser(carrierID, CreateUserRequest{
		Email:      "rep@test.com",
		Password:   "Passw0rd!",
		FullName:   "Union Rep",
		Role:       "viewer",
		EmployeeID: &emp.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, emp.ID.String(), dto["employee_id"])
}

func TestCreateUserRejectsEmployeeFromAnotherCarrier(t *testing.T) {
	db, svc, carrierID := setupUserServiceTest(t)

	otherCarrier := &models.Carrier{Name: "Other Carrier", Code: "TC2"}
	require.NoError(t, db.Create(otherCarrier).Error)
	foreignEmp := makeEmployee(t, db, otherCarrier.ID, "E0002", 1)

	_, err := svc.CreateUser(carrierID, CreateUserRequest{
		Email:      "rep2@test.com",
		Password:   "Passw0rd!",
		FullName:   "Union Rep",
		Role:       "viewer",
		EmployeeID: &foreignEmp.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "linked roster entry not found in your carrier", err.Error())
}

func TestUpdateUserCanLinkAndUnlinkEmployee(t *testing.T) {
	db, svc, carrierID := setupUserServiceTest(t)
	admin, err := newTestAdmin(db, carrierID)
	require.NoError(t, err)

	emp := makeEmployee(t, db, carrierID, "E0003", 1)
	created, err := svc.CreateUser(carrierID, CreateUserRequest{
		Email:    "analyst@test.com",
		Password: "Passw0rd!",
		FullName: "Analyst",
		Role:     "analyst",
	})
	require.NoError(t, err)
	targetID, err := uuid.Parse(created["id"].(string))
	require.NoError(t, err)

	updated, err := svc.UpdateUser(admin.ID, targetID, carrierID, UpdateUserRequest{EmployeeID: &emp.ID})
	require.NoError(t, err)
	assert.Equal(t, emp.ID.String(), updated["employee_id"])

	unlinked, err := svc.UpdateUser(admin.ID, targetID, carrierID, UpdateUserRequest{UnlinkEmployee: true})
	require.NoError(t, err)
	_, stillLinked := unlinked["employee_id"]
	assert.False(t, stillLinked)
}

func newTestAdmin(db *gorm.DB, carrierID uuid.UUID) (*models.User, error) {
	admin := &models.User{
		Email:     "admin@test.com",
		FullName:  "Admin",
		IsActive:  true,
		CarrierID: carrierID,
	}
	admin.Role = "admin"
	if err := admin.SetPassword("Passw0rd!"); err != nil {
		return nil, err
	}
	return admin, db.Create(admin).Error
}

package repositories

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

func setupScenarioRepoTest(t *testing.T) (*gorm.DB, *ScenarioRepository, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Carrier{}, &models.ScenarioRun{}))

	carrier := &models.Carrier{Name: "Test Carrier", Code: "TC1"}
	require.NoError(t, db.Create(carrier).Error)

	return db, NewScenarioRepository(db), carrier.ID
}

func TestCountActiveCountsOnlyPendingAndRunning(t *testing.T) {
	db, repo, carrierID := setupScenarioRepoTest(t)

	pending := &models.ScenarioRun{CarrierID: carrierID, Name: "pending", Status: models.ScenarioStatusPending}
	running := &models.ScenarioRun{CarrierID: carrierID, Name: "running", Status: models.ScenarioStatusRunning}
	done := &models.ScenarioRun{CarrierID: carrierID, Name: "done", Status: models.ScenarioStatusDone}
	require.NoError(t, db.Create(pending).Error)
	require.NoError(t, db.Create(running).Error)
	require.NoError(t, db.Create(done).Error)

	count, err := repo.CountActive(carrierID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCountStuckRunningIgnoresRecentRuns(t *testing.T) {
	db, repo, carrierID := setupScenarioRepoTest(t)

	freshStart := time.Now()
	fresh := &models.ScenarioRun{CarrierID: carrierID, Name: "fresh", Status: models.ScenarioStatusRunning, StartedAt: &freshStart}
	require.NoError(t, db.Create(fresh).Error)

	count, err := repo.CountStuckRunning(10 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	staleStart := time.Now().Add(-time.Hour)
	stale := &models.ScenarioRun{CarrierID: carrierID, Name: "stale", Status: models.ScenarioStatusRunning, StartedAt: &staleStart}
	require.NoError(t, db.Create(stale).Error)

	count, err = repo.CountStuckRunning(10 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
)

var dbSerial atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:tasks_%d?mode=memory&cache=shared", dbSerial.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func newService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(conn), nil)
	require.NoError(t, err)
	return svc
}

func newProperty(t *testing.T, conn *gorm.DB) *models.Property {
	t.Helper()

	property := &models.Property{
		ID:                 uuid.New(),
		Name:               "Shore Villa",
		AddressLine:        "1 Shore Rd",
		City:               "Santa Cruz",
		State:              "CA",
		Country:            "US",
		PricePerNightCents: 20000,
	}
	require.NoError(t, conn.Create(property).Error)
	return property
}

func newMember(t *testing.T, conn *gorm.DB) *models.TeamMember {
	t.Helper()

	member := &models.TeamMember{
		ID:     uuid.New(),
		Name:   "Luis Ortega",
		Email:  "luis@staysuite.dev",
		Role:   enums.TeamRoleCleaner,
		Active: true,
	}
	require.NoError(t, conn.Create(member).Error)
	return member
}

func TestCreateDefaultsStatusAndPriority(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)

	created, err := svc.Create(context.Background(), CreateTaskInput{
		PropertyID: property.ID,
		Title:      "Deep clean kitchen",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.TaskStatusPending, created.Status)
	assert.Equal(t, enums.TaskPriorityMedium, created.Priority)
	assert.Nil(t, created.CompletedAt)
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)

	ghost := uuid.New()
	_, err := svc.Create(context.Background(), CreateTaskInput{
		PropertyID:   property.ID,
		AssignedToID: &ghost,
		Title:        "Deep clean kitchen",
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCompletingTaskStampsCompletedAt(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)

	created, err := svc.Create(context.Background(), CreateTaskInput{
		PropertyID: property.ID,
		Title:      "Replace smoke detector battery",
	})
	require.NoError(t, err)

	completed := enums.TaskStatusCompleted
	updated, err := svc.Update(context.Background(), created.ID, UpdateTaskInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	reopened := enums.TaskStatusInProgress
	updated, err = svc.Update(context.Background(), created.ID, UpdateTaskInput{Status: &reopened})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt, "leaving completed clears the stamp")
}

func TestListFiltersCombineWithAND(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)
	member := newMember(t, conn)

	urgent := enums.TaskPriorityUrgent
	a, err := svc.Create(context.Background(), CreateTaskInput{
		PropertyID:   property.ID,
		AssignedToID: &member.ID,
		Title:        "Fix water heater",
		Priority:     urgent,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateTaskInput{
		PropertyID: property.ID,
		Title:      "Restock towels",
	})
	require.NoError(t, err)

	rows, err := svc.List(context.Background(), ListFilters{
		AssignedToID: &member.ID,
		Priority:     &urgent,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	all, err := svc.List(context.Background(), ListFilters{PropertyID: &property.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID, "insertion order is preserved")
}

func TestListRejectsBogusStatusFilter(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	bogus := enums.TaskStatus("paused")
	_, err := svc.List(context.Background(), ListFilters{Status: &bogus})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteReportsWhetherRowExisted(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)

	created, err := svc.Create(context.Background(), CreateTaskInput{
		PropertyID: property.ID,
		Title:      "Inspect deck railing",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

package team

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

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

	dsn := fmt.Sprintf("file:team_%d?mode=memory&cache=shared", dbSerial.Add(1))
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

func shiftStart() time.Time {
	return time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC)
}

func createMember(t *testing.T, svc Service, email string, role enums.TeamRole) *models.TeamMember {
	t.Helper()

	member, err := svc.CreateMember(context.Background(), CreateMemberInput{
		Name:            "Luis Ortega",
		Email:           email,
		Role:            role,
		HourlyRateCents: 2500,
	})
	require.NoError(t, err)
	return member
}

func TestCreateMemberDefaultsToActive(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	member := createMember(t, svc, "luis@staysuite.dev", enums.TeamRoleCleaner)
	assert.True(t, member.Active)
	assert.Equal(t, enums.TeamRoleCleaner, member.Role)
}

func TestCreateMemberRejectsBadEmail(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.CreateMember(context.Background(), CreateMemberInput{
		Name:  "Luis Ortega",
		Email: "not-an-email",
		Role:  enums.TeamRoleCleaner,
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateMemberRejectsBogusRole(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.CreateMember(context.Background(), CreateMemberInput{
		Name:  "Luis Ortega",
		Email: "luis@staysuite.dev",
		Role:  "janitor",
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListMembersFiltersByRoleAndActive(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	cleaner := createMember(t, svc, "luis@staysuite.dev", enums.TeamRoleCleaner)
	createMember(t, svc, "ana@staysuite.dev", enums.TeamRoleMaintenance)

	inactive := false
	_, err := svc.UpdateMember(context.Background(), cleaner.ID, UpdateMemberInput{Active: &inactive})
	require.NoError(t, err)

	role := enums.TeamRoleCleaner
	active := false
	rows, err := svc.ListMembers(context.Background(), MemberFilters{Role: &role, Active: &active})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cleaner.ID, rows[0].ID)

	activeOnly := true
	rows, err = svc.ListMembers(context.Background(), MemberFilters{Active: &activeOnly})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ana@staysuite.dev", rows[0].Email)
}

func TestScheduleRoundTrip(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)
	member := createMember(t, svc, "luis@staysuite.dev", enums.TeamRoleCleaner)

	created, err := svc.CreateSchedule(context.Background(), CreateScheduleInput{
		TeamMemberID: member.ID,
		PropertyID:   property.ID,
		StartTime:    shiftStart(),
		EndTime:      shiftStart().Add(4 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusScheduled, created.Status)

	loaded, err := svc.GetScheduleByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)

	rows, err := svc.ListSchedules(context.Background(), ScheduleFilters{TeamMemberID: &member.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateScheduleRejectsInvertedWindow(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)
	member := createMember(t, svc, "luis@staysuite.dev", enums.TeamRoleCleaner)

	_, err := svc.CreateSchedule(context.Background(), CreateScheduleInput{
		TeamMemberID: member.ID,
		PropertyID:   property.ID,
		StartTime:    shiftStart(),
		EndTime:      shiftStart().Add(-time.Hour),
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateScheduleValidatesEffectiveWindow(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)
	member := createMember(t, svc, "luis@staysuite.dev", enums.TeamRoleCleaner)

	created, err := svc.CreateSchedule(context.Background(), CreateScheduleInput{
		TeamMemberID: member.ID,
		PropertyID:   property.ID,
		StartTime:    shiftStart(),
		EndTime:      shiftStart().Add(4 * time.Hour),
	})
	require.NoError(t, err)

	late := created.EndTime.Add(time.Hour)
	_, err = svc.UpdateSchedule(context.Background(), created.ID, UpdateScheduleInput{StartTime: &late})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteMemberCascadesSchedulesAndClearsAssignments(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)
	member := createMember(t, svc, "luis@staysuite.dev", enums.TeamRoleCleaner)

	_, err := svc.CreateSchedule(context.Background(), CreateScheduleInput{
		TeamMemberID: member.ID,
		PropertyID:   property.ID,
		StartTime:    shiftStart(),
		EndTime:      shiftStart().Add(4 * time.Hour),
	})
	require.NoError(t, err)

	task := &models.Task{
		ID:           uuid.New(),
		PropertyID:   property.ID,
		AssignedToID: &member.ID,
		Title:        "Deep clean kitchen",
		Status:       enums.TaskStatusPending,
		Priority:     enums.TaskPriorityMedium,
	}
	require.NoError(t, conn.Create(task).Error)

	deleted, err := svc.DeleteMember(context.Background(), member.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	schedules, err := svc.ListSchedules(context.Background(), ScheduleFilters{TeamMemberID: &member.ID})
	require.NoError(t, err)
	assert.Empty(t, schedules)

	var survivor models.Task
	require.NoError(t, conn.First(&survivor, "id = ?", task.ID).Error)
	assert.Nil(t, survivor.AssignedToID, "task outlives the member without an assignee")
}

package inventory

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

	dsn := fmt.Sprintf("file:inventory_%d?mode=memory&cache=shared", dbSerial.Add(1))
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

func newPropertyWithRoom(t *testing.T, conn *gorm.DB) (*models.Property, *models.Room) {
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

	room := &models.Room{
		ID:         uuid.New(),
		PropertyID: property.ID,
		Name:       "Master Suite",
		Type:       "bedroom",
	}
	require.NoError(t, conn.Create(room).Error)
	return property, room
}

func TestCreateDefaultsCondition(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property, room := newPropertyWithRoom(t, conn)

	created, err := svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		Name:       "Queen Mattress",
		Category:   "furniture",
		Quantity:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ItemConditionGood, created.Condition)
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property, room := newPropertyWithRoom(t, conn)

	_, err := svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		Name:       "Queen Mattress",
		Category:   "furniture",
		Quantity:   -2,
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateRejectsUnknownRoom(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property, _ := newPropertyWithRoom(t, conn)

	_, err := svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     uuid.New(),
		Name:       "Queen Mattress",
		Category:   "furniture",
		Quantity:   1,
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateMergesConditionAndQuantity(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property, room := newPropertyWithRoom(t, conn)

	created, err := svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		Name:       "Bath Towels",
		Category:   "linens",
		Quantity:   8,
	})
	require.NoError(t, err)

	worn := enums.ItemConditionPoor
	quantity := 6
	updated, err := svc.Update(context.Background(), created.ID, UpdateItemInput{
		Condition: &worn,
		Quantity:  &quantity,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ItemConditionPoor, updated.Condition)
	assert.Equal(t, 6, updated.Quantity)
	assert.Equal(t, created.Name, updated.Name)
}

func TestListFiltersCombineWithAND(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property, room := newPropertyWithRoom(t, conn)

	a, err := svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		Name:       "Queen Mattress",
		Category:   "furniture",
		Quantity:   1,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		Name:       "Bath Towels",
		Category:   "linens",
		Quantity:   8,
	})
	require.NoError(t, err)

	category := "furniture"
	rows, err := svc.List(context.Background(), ListFilters{
		RoomID:   &room.ID,
		Category: &category,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	all, err := svc.List(context.Background(), ListFilters{PropertyID: &property.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID, "insertion order is preserved")
}

func TestDeleteReportsWhetherRowExisted(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property, room := newPropertyWithRoom(t, conn)

	created, err := svc.Create(context.Background(), CreateItemInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		Name:       "Coffee Maker",
		Category:   "appliances",
		Quantity:   1,
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

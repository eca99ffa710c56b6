package bookings

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
	"github.com/staysuite/staysuite-backend/pkg/pagination"
)

var dbSerial atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:bookings_%d?mode=memory&cache=shared", dbSerial.Add(1))
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

func newProperty(t *testing.T, conn *gorm.DB, name string) *models.Property {
	t.Helper()

	property := &models.Property{
		ID:                 uuid.New(),
		Name:               name,
		AddressLine:        "1 Shore Rd",
		City:               "Santa Cruz",
		State:              "CA",
		Country:            "US",
		PricePerNightCents: 20000,
		Bedrooms:           2,
		Bathrooms:          1,
		MaxGuests:          4,
	}
	require.NoError(t, conn.Create(property).Error)
	return property
}

func checkIn() time.Time {
	return time.Date(2026, 9, 4, 15, 0, 0, 0, time.UTC)
}

func validInput(propertyID uuid.UUID) CreateBookingInput {
	return CreateBookingInput{
		PropertyID:   propertyID,
		GuestName:    "Dana Whitfield",
		GuestCount:   2,
		CheckInDate:  checkIn(),
		CheckOutDate: checkIn().AddDate(0, 0, 3),
		TotalCents:   60000,
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	created, err := svc.Create(context.Background(), validInput(property.ID))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.BookingStatusPending, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	loaded, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.GuestName, loaded.GuestName)
	assert.Equal(t, 3, loaded.Nights())
}

func TestCreateRejectsInvertedDates(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	input := validInput(property.ID)
	input.CheckOutDate = input.CheckInDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), input)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateRejectsUnknownProperty(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.Create(context.Background(), validInput(uuid.New()))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCreateRejectsBogusStatus(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	input := validInput(property.ID)
	input.Status = "teleported"

	_, err := svc.Create(context.Background(), input)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateMergesWithoutReplacing(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	created, err := svc.Create(context.Background(), validInput(property.ID))
	require.NoError(t, err)

	cancelled := enums.BookingStatusCancelled
	updated, err := svc.Update(context.Background(), created.ID, UpdateBookingInput{Status: &cancelled})
	require.NoError(t, err)

	assert.Equal(t, enums.BookingStatusCancelled, updated.Status)
	assert.Equal(t, created.GuestName, updated.GuestName, "untouched fields keep prior values")
	assert.Equal(t, created.TotalCents, updated.TotalCents)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateValidatesEffectiveWindow(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	created, err := svc.Create(context.Background(), validInput(property.ID))
	require.NoError(t, err)

	// Moving check-in past the stored check-out must fail even though only
	// one side of the window is patched.
	late := created.CheckOutDate.AddDate(0, 0, 2)
	_, err = svc.Update(context.Background(), created.ID, UpdateBookingInput{CheckInDate: &late})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateMissingBookingReturnsNotFound(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	name := "Nobody"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateBookingInput{GuestName: &name})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListFiltersCombineWithAND(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	first := newProperty(t, conn, "Shore Villa")
	second := newProperty(t, conn, "Pine Cabin")

	a, err := svc.Create(context.Background(), validInput(first.ID))
	require.NoError(t, err)
	confirmed := validInput(first.ID)
	confirmed.Status = enums.BookingStatusConfirmed
	b, err := svc.Create(context.Background(), confirmed)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validInput(second.ID))
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, a.ID, all[0].ID, "insertion order is preserved")

	pending := enums.BookingStatusPending
	rows, err := svc.List(context.Background(), ListFilters{PropertyID: &first.ID, Status: &pending})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	status := enums.BookingStatusConfirmed
	rows, err = svc.List(context.Background(), ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, b.ID, rows[0].ID)
}

func TestListPageWalksAllRows(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	for i := 0; i < 5; i++ {
		input := validInput(property.ID)
		input.GuestName = fmt.Sprintf("Guest %d", i)
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
	}

	seen := map[uuid.UUID]bool{}
	page := pagination.Params{Limit: 2}
	for {
		rows, next, err := svc.ListPage(context.Background(), ListFilters{}, page)
		require.NoError(t, err)
		for _, row := range rows {
			assert.False(t, seen[row.ID], "no row repeats across pages")
			seen[row.ID] = true
		}
		if next == "" {
			break
		}
		page.Cursor = next
	}
	assert.Len(t, seen, 5)

	_, _, err := svc.ListPage(context.Background(), ListFilters{}, pagination.Params{Cursor: "not-base64!"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteIsIdempotentInEffect(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn, "Shore Villa")

	created, err := svc.Create(context.Background(), validInput(property.ID))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

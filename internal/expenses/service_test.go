package expenses

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

	dsn := fmt.Sprintf("file:expenses_%d?mode=memory&cache=shared", dbSerial.Add(1))
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

func incurredAt() time.Time {
	return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
}

func TestCreateExpenseDefaultsStatus(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	created, err := svc.Create(context.Background(), CreateExpenseInput{
		Category:    "maintenance",
		Description: "HVAC filter replacement",
		AmountCents: 4500,
		IncurredAt:  incurredAt(),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ExpenseStatusPending, created.Status)
	assert.Nil(t, created.PropertyID, "portfolio-wide expense has no property")
}

func TestCreateExpenseRejectsNegativeAmount(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.Create(context.Background(), CreateExpenseInput{
		Category:    "maintenance",
		Description: "HVAC filter replacement",
		AmountCents: -4500,
		IncurredAt:  incurredAt(),
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListExpensesFiltersCombineWithAND(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)

	a, err := svc.Create(context.Background(), CreateExpenseInput{
		PropertyID:  &property.ID,
		Category:    "maintenance",
		Description: "HVAC filter replacement",
		AmountCents: 4500,
		Status:      enums.ExpenseStatusApproved,
		IncurredAt:  incurredAt(),
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateExpenseInput{
		PropertyID:  &property.ID,
		Category:    "supplies",
		Description: "Cleaning supplies restock",
		AmountCents: 2100,
		IncurredAt:  incurredAt(),
	})
	require.NoError(t, err)

	category := "maintenance"
	approved := enums.ExpenseStatusApproved
	rows, err := svc.List(context.Background(), ListFilters{
		PropertyID: &property.ID,
		Category:   &category,
		Status:     &approved,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	all, err := svc.List(context.Background(), ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID, "insertion order is preserved")
}

func TestCreateReportComputesFiguresFromStore(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)
	property := newProperty(t, conn)

	invoice := &models.Invoice{
		ID:            uuid.New(),
		PropertyID:    property.ID,
		InvoiceNumber: "INV-2026-0001",
		Status:        enums.InvoiceStatusPaid,
		IssueDate:     incurredAt(),
	}
	require.NoError(t, conn.Create(invoice).Error)
	require.NoError(t, conn.Create(&models.Payment{
		ID:          uuid.New(),
		InvoiceID:   invoice.ID,
		AmountCents: 60000,
		Method:      "card",
		PaidAt:      incurredAt().AddDate(0, 0, 2),
	}).Error)

	_, err := svc.Create(context.Background(), CreateExpenseInput{
		PropertyID:  &property.ID,
		Category:    "maintenance",
		Description: "HVAC filter replacement",
		AmountCents: 4500,
		IncurredAt:  incurredAt(),
	})
	require.NoError(t, err)

	report, err := svc.CreateReport(context.Background(), CreateReportInput{
		PropertyID: &property.ID,
		Title:      "August summary",
		StartDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 60000, report.RevenueCents)
	assert.Equal(t, 4500, report.ExpensesCents)
	assert.Equal(t, 55500, report.NetCents)
}

func TestCreateReportRejectsInvertedRange(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	_, err := svc.CreateReport(context.Background(), CreateReportInput{
		Title:     "Broken range",
		StartDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateReportKeepsNetInSync(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	revenue := 100000
	spent := 25000
	report, err := svc.CreateReport(context.Background(), CreateReportInput{
		Title:         "Manual summary",
		StartDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		RevenueCents:  &revenue,
		ExpensesCents: &spent,
	})
	require.NoError(t, err)
	assert.Equal(t, 75000, report.NetCents)

	newSpend := 40000
	updated, err := svc.UpdateReport(context.Background(), report.ID, UpdateReportInput{ExpensesCents: &newSpend})
	require.NoError(t, err)
	assert.Equal(t, 60000, updated.NetCents)
	assert.Equal(t, 100000, updated.RevenueCents)
}

func TestDeleteExpenseReportsWhetherRowExisted(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	created, err := svc.Create(context.Background(), CreateExpenseInput{
		Category:    "supplies",
		Description: "Cleaning supplies restock",
		AmountCents: 2100,
		IncurredAt:  incurredAt(),
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Expense is an operational cost, optionally scoped to one property.
type Expense struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID  *uuid.UUID          `gorm:"column:property_id;type:uuid;index"`
	Category    string              `gorm:"column:category;not null"`
	Description string              `gorm:"column:description;not null"`
	AmountCents int                 `gorm:"column:amount_cents;not null"`
	Status      enums.ExpenseStatus `gorm:"column:status;not null;default:pending"`
	IncurredAt  time.Time           `gorm:"column:incurred_at;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// FinancialReport summarizes revenue and spend over a date range,
// portfolio-wide when PropertyID is nil.
type FinancialReport struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID    *uuid.UUID `gorm:"column:property_id;type:uuid;index"`
	Title         string     `gorm:"column:title;not null"`
	StartDate     time.Time  `gorm:"column:start_date;not null"`
	EndDate       time.Time  `gorm:"column:end_date;not null"`
	RevenueCents  int        `gorm:"column:revenue_cents;not null;default:0"`
	ExpensesCents int        `gorm:"column:expenses_cents;not null;default:0"`
	NetCents      int        `gorm:"column:net_cents;not null;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

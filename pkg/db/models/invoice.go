package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Invoice bills a property stay. TotalCents is derived from the line items
// by the billing service whenever a line item changes.
type Invoice struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID    uuid.UUID           `gorm:"column:property_id;type:uuid;not null;index"`
	BookingID     *uuid.UUID          `gorm:"column:booking_id;type:uuid;index"`
	InvoiceNumber string              `gorm:"column:invoice_number;not null;uniqueIndex"`
	Status        enums.InvoiceStatus `gorm:"column:status;not null;default:draft"`
	TotalCents    int                 `gorm:"column:total_cents;not null;default:0"`
	IssueDate     time.Time           `gorm:"column:issue_date;not null"`
	DueDate       *time.Time          `gorm:"column:due_date"`
	Notes         *string             `gorm:"column:notes"`
	LineItems     []InvoiceLineItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments      []Payment           `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// InvoiceLineItem is one billed row; AmountCents = Quantity * UnitPriceCents.
type InvoiceLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID      uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	Description    string    `gorm:"column:description;not null"`
	Quantity       int       `gorm:"column:quantity;not null;default:1"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	AmountCents    int       `gorm:"column:amount_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Payment records money received against an invoice.
type Payment struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID   uuid.UUID `gorm:"column:invoice_id;type:uuid;not null;index"`
	AmountCents int       `gorm:"column:amount_cents;not null"`
	Method      string    `gorm:"column:method;not null"`
	Reference   *string   `gorm:"column:reference"`
	PaidAt      time.Time `gorm:"column:paid_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Booking reserves a property for a guest over a date window.
type Booking struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID   uuid.UUID           `gorm:"column:property_id;type:uuid;not null;index"`
	GuestName    string              `gorm:"column:guest_name;not null"`
	GuestEmail   *string             `gorm:"column:guest_email"`
	GuestCount   int                 `gorm:"column:guest_count;not null;default:1"`
	CheckInDate  time.Time           `gorm:"column:check_in_date;not null"`
	CheckOutDate time.Time           `gorm:"column:check_out_date;not null"`
	Status       enums.BookingStatus `gorm:"column:status;not null;default:pending"`
	TotalCents   int                 `gorm:"column:total_cents;not null;default:0"`
	Notes        *string             `gorm:"column:notes"`
	Invoices     []Invoice           `gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Nights returns the length of the stay in whole nights.
func (b Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

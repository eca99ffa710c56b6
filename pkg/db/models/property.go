package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Property is the root aggregate every other operational entity hangs off.
// The structured address fields are canonical; the display string is derived.
type Property struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name              string          `gorm:"column:name;not null"`
	Description       *string         `gorm:"column:description"`
	AddressLine       string          `gorm:"column:address_line;not null"`
	City              string          `gorm:"column:city;not null"`
	State             string          `gorm:"column:state;not null"`
	ZipCode           string          `gorm:"column:zip_code"`
	Country           string          `gorm:"column:country;not null;default:US"`
	PricePerNightCents int            `gorm:"column:price_per_night_cents;not null"`
	Bedrooms          int             `gorm:"column:bedrooms;not null;default:0"`
	Bathrooms         int             `gorm:"column:bathrooms;not null;default:0"`
	MaxGuests         int             `gorm:"column:max_guests;not null;default:0"`
	Amenities         *string         `gorm:"column:amenities"`
	Rooms             []Room          `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Photos            []PropertyPhoto `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Bookings          []Booking       `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Tasks             []Task          `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	InventoryItems    []InventoryItem `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayLocation renders the "City, State" string the dashboard shows.
func (p Property) DisplayLocation() string {
	parts := make([]string, 0, 2)
	if strings.TrimSpace(p.City) != "" {
		parts = append(parts, p.City)
	}
	if strings.TrimSpace(p.State) != "" {
		parts = append(parts, p.State)
	}
	return strings.Join(parts, ", ")
}

// Room belongs to exactly one property.
type Room struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID  uuid.UUID       `gorm:"column:property_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Type        string          `gorm:"column:type;not null"`
	Description *string         `gorm:"column:description"`
	Tasks       []Task          `gorm:"foreignKey:RoomID;constraint:OnDelete:SET NULL"`
	Items       []InventoryItem `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// PropertyPhoto stores a gallery entry with an optional ordering hint.
type PropertyPhoto struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index"`
	URL        string    `gorm:"column:url;not null"`
	Caption    *string   `gorm:"column:caption"`
	Position   int       `gorm:"column:position;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// InventoryItem tracks a furnishing or supply inside a specific room.
type InventoryItem struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID uuid.UUID           `gorm:"column:property_id;type:uuid;not null;index"`
	RoomID     uuid.UUID           `gorm:"column:room_id;type:uuid;not null;index"`
	Name       string              `gorm:"column:name;not null"`
	Category   string              `gorm:"column:category;not null"`
	Quantity   int                 `gorm:"column:quantity;not null;default:0"`
	Condition  enums.ItemCondition `gorm:"column:condition;not null;default:good"`
	Notes      *string             `gorm:"column:notes"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Task is a unit of operational work scoped to a property, optionally to a
// room, and optionally assigned to a team member.
type Task struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	PropertyID   uuid.UUID          `gorm:"column:property_id;type:uuid;not null;index"`
	RoomID       *uuid.UUID         `gorm:"column:room_id;type:uuid;index"`
	AssignedToID *uuid.UUID         `gorm:"column:assigned_to_id;type:uuid;index"`
	Title        string             `gorm:"column:title;not null"`
	Description  *string            `gorm:"column:description"`
	Status       enums.TaskStatus   `gorm:"column:status;not null;default:pending"`
	Priority     enums.TaskPriority `gorm:"column:priority;not null;default:medium"`
	DueDate      *time.Time         `gorm:"column:due_date"`
	CompletedAt  *time.Time         `gorm:"column:completed_at"`
	Schedules    []TeamSchedule     `gorm:"foreignKey:TaskID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

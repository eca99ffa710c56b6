package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// TeamMember is a worker who can be assigned tasks and shifts.
// Deleting a member clears their task assignments rather than deleting work.
type TeamMember struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name            string         `gorm:"column:name;not null"`
	Email           string         `gorm:"column:email;not null"`
	Phone           *string        `gorm:"column:phone"`
	Role            enums.TeamRole `gorm:"column:role;not null"`
	Active          bool           `gorm:"column:active;not null;default:true"`
	HourlyRateCents int            `gorm:"column:hourly_rate_cents;not null;default:0"`
	Tasks           []Task         `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Schedules       []TeamSchedule `gorm:"foreignKey:TeamMemberID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TeamSchedule books a member for a shift at a property, optionally tied to
// a specific task.
type TeamSchedule struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	TeamMemberID uuid.UUID            `gorm:"column:team_member_id;type:uuid;not null;index"`
	PropertyID   uuid.UUID            `gorm:"column:property_id;type:uuid;not null;index"`
	TaskID       *uuid.UUID           `gorm:"column:task_id;type:uuid;index"`
	StartTime    time.Time            `gorm:"column:start_time;not null"`
	EndTime      time.Time            `gorm:"column:end_time;not null"`
	Status       enums.ScheduleStatus `gorm:"column:status;not null;default:scheduled"`
	Notes        *string              `gorm:"column:notes"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// User is a dashboard account. Email is unique across the store.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Email        string          `gorm:"column:email;not null;uniqueIndex"`
	Name         string          `gorm:"column:name;not null"`
	Role         enums.UserRole  `gorm:"column:role;not null"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	Preference   *UserPreference `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// UserPreference holds per-account display settings, one row per user.
type UserPreference struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID               uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Timezone             string    `gorm:"column:timezone;not null;default:UTC"`
	Locale               string    `gorm:"column:locale;not null;default:en-US"`
	Theme                string    `gorm:"column:theme;not null;default:light"`
	NotificationsEnabled bool      `gorm:"column:notifications_enabled;not null;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

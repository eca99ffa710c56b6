package users

import (
	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateUserInput holds the payload to register a dashboard account. The
// plaintext password is hashed before it reaches storage.
type CreateUserInput struct {
	Email    string         `json:"email" validate:"required,email"`
	Name     string         `json:"name" validate:"required"`
	Role     enums.UserRole `json:"role" validate:"required"`
	Password string         `json:"password" validate:"required,min=8"`
}

func (in CreateUserInput) toModel(passwordHash string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: passwordHash,
	}
}

// UpdateUserInput holds optional mutation values; nil leaves a field
// unchanged. A non-nil Password is rehashed.
type UpdateUserInput struct {
	Email    *string         `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string         `json:"name,omitempty"`
	Role     *enums.UserRole `json:"role,omitempty"`
	Password *string         `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (in UpdateUserInput) fields(passwordHash *string) map[string]any {
	fields := map[string]any{}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if passwordHash != nil {
		fields["password_hash"] = *passwordHash
	}
	return fields
}

// CreatePreferenceInput holds the payload to store display settings for an
// account.
type CreatePreferenceInput struct {
	UserID               uuid.UUID `json:"user_id" validate:"required"`
	Timezone             string    `json:"timezone,omitempty"`
	Locale               string    `json:"locale,omitempty"`
	Theme                string    `json:"theme,omitempty"`
	NotificationsEnabled *bool     `json:"notifications_enabled,omitempty"`
}

func (in CreatePreferenceInput) toModel() *models.UserPreference {
	pref := &models.UserPreference{
		ID:                   uuid.New(),
		UserID:               in.UserID,
		Timezone:             in.Timezone,
		Locale:               in.Locale,
		Theme:                in.Theme,
		NotificationsEnabled: true,
	}
	if pref.Timezone == "" {
		pref.Timezone = "UTC"
	}
	if pref.Locale == "" {
		pref.Locale = "en-US"
	}
	if pref.Theme == "" {
		pref.Theme = "light"
	}
	if in.NotificationsEnabled != nil {
		pref.NotificationsEnabled = *in.NotificationsEnabled
	}
	return pref
}

// UpdatePreferenceInput holds optional preference mutation values.
type UpdatePreferenceInput struct {
	Timezone             *string `json:"timezone,omitempty"`
	Locale               *string `json:"locale,omitempty"`
	Theme                *string `json:"theme,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
}

func (in UpdatePreferenceInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Timezone != nil {
		fields["timezone"] = *in.Timezone
	}
	if in.Locale != nil {
		fields["locale"] = *in.Locale
	}
	if in.Theme != nil {
		fields["theme"] = *in.Theme
	}
	if in.NotificationsEnabled != nil {
		fields["notifications_enabled"] = *in.NotificationsEnabled
	}
	return fields
}

package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateMemberInput holds the payload to onboard a team member.
type CreateMemberInput struct {
	Name            string         `json:"name" validate:"required"`
	Email           string         `json:"email" validate:"required,email"`
	Phone           *string        `json:"phone,omitempty"`
	Role            enums.TeamRole `json:"role" validate:"required"`
	Active          *bool          `json:"active,omitempty"`
	HourlyRateCents int            `json:"hourly_rate_cents" validate:"gte=0"`
}

func (in CreateMemberInput) toModel() *models.TeamMember {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &models.TeamMember{
		ID:              uuid.New(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Role:            in.Role,
		Active:          active,
		HourlyRateCents: in.HourlyRateCents,
	}
}

// UpdateMemberInput holds optional mutation values; nil leaves a field
// unchanged.
type UpdateMemberInput struct {
	Name            *string         `json:"name,omitempty"`
	Email           *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string         `json:"phone,omitempty"`
	Role            *enums.TeamRole `json:"role,omitempty"`
	Active          *bool           `json:"active,omitempty"`
	HourlyRateCents *int            `json:"hourly_rate_cents,omitempty" validate:"omitempty,gte=0"`
}

func (in UpdateMemberInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	if in.HourlyRateCents != nil {
		fields["hourly_rate_cents"] = *in.HourlyRateCents
	}
	return fields
}

// CreateScheduleInput holds the payload to book a shift.
type CreateScheduleInput struct {
	TeamMemberID uuid.UUID            `json:"team_member_id" validate:"required"`
	PropertyID   uuid.UUID            `json:"property_id" validate:"required"`
	TaskID       *uuid.UUID           `json:"task_id,omitempty"`
	StartTime    time.Time            `json:"start_time" validate:"required"`
	EndTime      time.Time            `json:"end_time" validate:"required"`
	Status       enums.ScheduleStatus `json:"status,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
}

func (in CreateScheduleInput) toModel() *models.TeamSchedule {
	status := in.Status
	if status == "" {
		status = enums.ScheduleStatusScheduled
	}
	return &models.TeamSchedule{
		ID:           uuid.New(),
		TeamMemberID: in.TeamMemberID,
		PropertyID:   in.PropertyID,
		TaskID:       in.TaskID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Status:       status,
		Notes:        in.Notes,
	}
}

// UpdateScheduleInput holds optional schedule mutation values.
type UpdateScheduleInput struct {
	TaskID    *uuid.UUID            `json:"task_id,omitempty"`
	StartTime *time.Time            `json:"start_time,omitempty"`
	EndTime   *time.Time            `json:"end_time,omitempty"`
	Status    *enums.ScheduleStatus `json:"status,omitempty"`
	Notes     *string               `json:"notes,omitempty"`
}

func (in UpdateScheduleInput) fields() map[string]any {
	fields := map[string]any{}
	if in.TaskID != nil {
		fields["task_id"] = *in.TaskID
	}
	if in.StartTime != nil {
		fields["start_time"] = *in.StartTime
	}
	if in.EndTime != nil {
		fields["end_time"] = *in.EndTime
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	return fields
}

package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateTaskInput holds the payload to open a work item.
type CreateTaskInput struct {
	PropertyID   uuid.UUID          `json:"property_id" validate:"required"`
	RoomID       *uuid.UUID         `json:"room_id,omitempty"`
	AssignedToID *uuid.UUID         `json:"assigned_to_id,omitempty"`
	Title        string             `json:"title" validate:"required"`
	Description  *string            `json:"description,omitempty"`
	Status       enums.TaskStatus   `json:"status,omitempty"`
	Priority     enums.TaskPriority `json:"priority,omitempty"`
	DueDate      *time.Time         `json:"due_date,omitempty"`
}

func (in CreateTaskInput) toModel() *models.Task {
	status := in.Status
	if status == "" {
		status = enums.TaskStatusPending
	}
	priority := in.Priority
	if priority == "" {
		priority = enums.TaskPriorityMedium
	}
	task := &models.Task{
		ID:           uuid.New(),
		PropertyID:   in.PropertyID,
		RoomID:       in.RoomID,
		AssignedToID: in.AssignedToID,
		Title:        in.Title,
		Description:  in.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      in.DueDate,
	}
	if status == enums.TaskStatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}
	return task
}

// UpdateTaskInput holds optional mutation values; nil leaves a field
// unchanged.
type UpdateTaskInput struct {
	RoomID       *uuid.UUID          `json:"room_id,omitempty"`
	AssignedToID *uuid.UUID          `json:"assigned_to_id,omitempty"`
	Title        *string             `json:"title,omitempty"`
	Description  *string             `json:"description,omitempty"`
	Status       *enums.TaskStatus   `json:"status,omitempty"`
	Priority     *enums.TaskPriority `json:"priority,omitempty"`
	DueDate      *time.Time          `json:"due_date,omitempty"`
}

func (in UpdateTaskInput) fields() map[string]any {
	fields := map[string]any{}
	if in.RoomID != nil {
		fields["room_id"] = *in.RoomID
	}
	if in.AssignedToID != nil {
		fields["assigned_to_id"] = *in.AssignedToID
	}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Priority != nil {
		fields["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		fields["due_date"] = *in.DueDate
	}
	return fields
}

package inventory

import (
	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateItemInput holds the payload to record a furnishing or supply.
type CreateItemInput struct {
	PropertyID uuid.UUID           `json:"property_id" validate:"required"`
	RoomID     uuid.UUID           `json:"room_id" validate:"required"`
	Name       string              `json:"name" validate:"required"`
	Category   string              `json:"category" validate:"required"`
	Quantity   int                 `json:"quantity" validate:"gte=0"`
	Condition  enums.ItemCondition `json:"condition,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
}

func (in CreateItemInput) toModel() *models.InventoryItem {
	condition := in.Condition
	if condition == "" {
		condition = enums.ItemConditionGood
	}
	return &models.InventoryItem{
		ID:         uuid.New(),
		PropertyID: in.PropertyID,
		RoomID:     in.RoomID,
		Name:       in.Name,
		Category:   in.Category,
		Quantity:   in.Quantity,
		Condition:  condition,
		Notes:      in.Notes,
	}
}

// UpdateItemInput holds optional mutation values; nil leaves a field
// unchanged.
type UpdateItemInput struct {
	RoomID    *uuid.UUID           `json:"room_id,omitempty"`
	Name      *string              `json:"name,omitempty"`
	Category  *string              `json:"category,omitempty"`
	Quantity  *int                 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Condition *enums.ItemCondition `json:"condition,omitempty"`
	Notes     *string              `json:"notes,omitempty"`
}

func (in UpdateItemInput) fields() map[string]any {
	fields := map[string]any{}
	if in.RoomID != nil {
		fields["room_id"] = *in.RoomID
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Quantity != nil {
		fields["quantity"] = *in.Quantity
	}
	if in.Condition != nil {
		fields["condition"] = *in.Condition
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	return fields
}

package expenses

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateExpenseInput holds the payload to record an operational cost.
type CreateExpenseInput struct {
	PropertyID  *uuid.UUID          `json:"property_id,omitempty"`
	Category    string              `json:"category" validate:"required"`
	Description string              `json:"description" validate:"required"`
	AmountCents int                 `json:"amount_cents" validate:"gte=0"`
	Status      enums.ExpenseStatus `json:"status,omitempty"`
	IncurredAt  time.Time           `json:"incurred_at" validate:"required"`
}

func (in CreateExpenseInput) toModel() *models.Expense {
	status := in.Status
	if status == "" {
		status = enums.ExpenseStatusPending
	}
	return &models.Expense{
		ID:          uuid.New(),
		PropertyID:  in.PropertyID,
		Category:    in.Category,
		Description: in.Description,
		AmountCents: in.AmountCents,
		Status:      status,
		IncurredAt:  in.IncurredAt,
	}
}

// UpdateExpenseInput holds optional mutation values; nil leaves a field
// unchanged.
type UpdateExpenseInput struct {
	PropertyID  *uuid.UUID           `json:"property_id,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Description *string              `json:"description,omitempty"`
	AmountCents *int                 `json:"amount_cents,omitempty" validate:"omitempty,gte=0"`
	Status      *enums.ExpenseStatus `json:"status,omitempty"`
	IncurredAt  *time.Time           `json:"incurred_at,omitempty"`
}

func (in UpdateExpenseInput) fields() map[string]any {
	fields := map[string]any{}
	if in.PropertyID != nil {
		fields["property_id"] = *in.PropertyID
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.AmountCents != nil {
		fields["amount_cents"] = *in.AmountCents
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.IncurredAt != nil {
		fields["incurred_at"] = *in.IncurredAt
	}
	return fields
}

// CreateReportInput holds the payload to save a financial summary. When the
// cents figures are omitted they are computed from stored payments and
// expenses over the date range.
type CreateReportInput struct {
	PropertyID    *uuid.UUID `json:"property_id,omitempty"`
	Title         string     `json:"title" validate:"required"`
	StartDate     time.Time  `json:"start_date" validate:"required"`
	EndDate       time.Time  `json:"end_date" validate:"required"`
	RevenueCents  *int       `json:"revenue_cents,omitempty" validate:"omitempty,gte=0"`
	ExpensesCents *int       `json:"expenses_cents,omitempty" validate:"omitempty,gte=0"`
}

// UpdateReportInput holds optional report mutation values. NetCents always
// rederives from the effective revenue and expense figures.
type UpdateReportInput struct {
	Title         *string    `json:"title,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	RevenueCents  *int       `json:"revenue_cents,omitempty" validate:"omitempty,gte=0"`
	ExpensesCents *int       `json:"expenses_cents,omitempty" validate:"omitempty,gte=0"`
}

func (in UpdateReportInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.StartDate != nil {
		fields["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		fields["end_date"] = *in.EndDate
	}
	if in.RevenueCents != nil {
		fields["revenue_cents"] = *in.RevenueCents
	}
	if in.ExpensesCents != nil {
		fields["expenses_cents"] = *in.ExpensesCents
	}
	return fields
}

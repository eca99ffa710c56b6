package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateInvoiceInput holds the payload to open an invoice. Any line items
// supplied are inserted in the same transaction and the total is derived
// from them.
type CreateInvoiceInput struct {
	PropertyID    uuid.UUID             `json:"property_id" validate:"required"`
	BookingID     *uuid.UUID            `json:"booking_id,omitempty"`
	InvoiceNumber string                `json:"invoice_number" validate:"required"`
	Status        enums.InvoiceStatus   `json:"status,omitempty"`
	IssueDate     time.Time             `json:"issue_date" validate:"required"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
	LineItems     []CreateLineItemEntry `json:"line_items,omitempty" validate:"dive"`
}

// CreateLineItemEntry is a line item nested in an invoice create call.
type CreateLineItemEntry struct {
	Description    string `json:"description" validate:"required"`
	Quantity       int    `json:"quantity" validate:"gte=1"`
	UnitPriceCents int    `json:"unit_price_cents" validate:"gte=0"`
}

func (in CreateInvoiceInput) toModel() *models.Invoice {
	status := in.Status
	if status == "" {
		status = enums.InvoiceStatusDraft
	}
	return &models.Invoice{
		ID:            uuid.New(),
		PropertyID:    in.PropertyID,
		BookingID:     in.BookingID,
		InvoiceNumber: in.InvoiceNumber,
		Status:        status,
		IssueDate:     in.IssueDate,
		DueDate:       in.DueDate,
		Notes:         in.Notes,
	}
}

func (e CreateLineItemEntry) toModel(invoiceID uuid.UUID) *models.InvoiceLineItem {
	return &models.InvoiceLineItem{
		ID:             uuid.New(),
		InvoiceID:      invoiceID,
		Description:    e.Description,
		Quantity:       e.Quantity,
		UnitPriceCents: e.UnitPriceCents,
		AmountCents:    e.Quantity * e.UnitPriceCents,
	}
}

// UpdateInvoiceInput holds optional mutation values; nil leaves a field
// unchanged. Totals are not directly writable.
type UpdateInvoiceInput struct {
	BookingID     *uuid.UUID           `json:"booking_id,omitempty"`
	InvoiceNumber *string              `json:"invoice_number,omitempty"`
	Status        *enums.InvoiceStatus `json:"status,omitempty"`
	IssueDate     *time.Time           `json:"issue_date,omitempty"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
}

func (in UpdateInvoiceInput) fields() map[string]any {
	fields := map[string]any{}
	if in.BookingID != nil {
		fields["booking_id"] = *in.BookingID
	}
	if in.InvoiceNumber != nil {
		fields["invoice_number"] = *in.InvoiceNumber
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.IssueDate != nil {
		fields["issue_date"] = *in.IssueDate
	}
	if in.DueDate != nil {
		fields["due_date"] = *in.DueDate
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	return fields
}

// CreateLineItemInput holds the payload to add a row to an existing invoice.
type CreateLineItemInput struct {
	InvoiceID      uuid.UUID `json:"invoice_id" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	Quantity       int       `json:"quantity" validate:"gte=1"`
	UnitPriceCents int       `json:"unit_price_cents" validate:"gte=0"`
}

func (in CreateLineItemInput) toModel() *models.InvoiceLineItem {
	return &models.InvoiceLineItem{
		ID:             uuid.New(),
		InvoiceID:      in.InvoiceID,
		Description:    in.Description,
		Quantity:       in.Quantity,
		UnitPriceCents: in.UnitPriceCents,
		AmountCents:    in.Quantity * in.UnitPriceCents,
	}
}

// UpdateLineItemInput holds optional line item mutation values. AmountCents
// is always rederived from the effective quantity and unit price.
type UpdateLineItemInput struct {
	Description    *string `json:"description,omitempty"`
	Quantity       *int    `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	UnitPriceCents *int    `json:"unit_price_cents,omitempty" validate:"omitempty,gte=0"`
}

func (in UpdateLineItemInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Quantity != nil {
		fields["quantity"] = *in.Quantity
	}
	if in.UnitPriceCents != nil {
		fields["unit_price_cents"] = *in.UnitPriceCents
	}
	return fields
}

// CreatePaymentInput holds the payload to record money against an invoice.
type CreatePaymentInput struct {
	InvoiceID   uuid.UUID `json:"invoice_id" validate:"required"`
	AmountCents int       `json:"amount_cents" validate:"gte=0"`
	Method      string    `json:"method" validate:"required"`
	Reference   *string   `json:"reference,omitempty"`
	PaidAt      time.Time `json:"paid_at" validate:"required"`
}

func (in CreatePaymentInput) toModel() *models.Payment {
	return &models.Payment{
		ID:          uuid.New(),
		InvoiceID:   in.InvoiceID,
		AmountCents: in.AmountCents,
		Method:      in.Method,
		Reference:   in.Reference,
		PaidAt:      in.PaidAt,
	}
}

// UpdatePaymentInput holds optional payment mutation values.
type UpdatePaymentInput struct {
	AmountCents *int       `json:"amount_cents,omitempty" validate:"omitempty,gte=0"`
	Method      *string    `json:"method,omitempty"`
	Reference   *string    `json:"reference,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

func (in UpdatePaymentInput) fields() map[string]any {
	fields := map[string]any{}
	if in.AmountCents != nil {
		fields["amount_cents"] = *in.AmountCents
	}
	if in.Method != nil {
		fields["method"] = *in.Method
	}
	if in.Reference != nil {
		fields["reference"] = *in.Reference
	}
	if in.PaidAt != nil {
		fields["paid_at"] = *in.PaidAt
	}
	return fields
}

package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// CreateBookingInput holds the payload to reserve a property.
type CreateBookingInput struct {
	PropertyID   uuid.UUID           `json:"property_id" validate:"required"`
	GuestName    string              `json:"guest_name" validate:"required"`
	GuestEmail   *string             `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestCount   int                 `json:"guest_count" validate:"gte=1"`
	CheckInDate  time.Time           `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time           `json:"check_out_date" validate:"required"`
	Status       enums.BookingStatus `json:"status,omitempty"`
	TotalCents   int                 `json:"total_cents" validate:"gte=0"`
	Notes        *string             `json:"notes,omitempty"`
}

func (in CreateBookingInput) toModel() *models.Booking {
	status := in.Status
	if status == "" {
		status = enums.BookingStatusPending
	}
	return &models.Booking{
		ID:           uuid.New(),
		PropertyID:   in.PropertyID,
		GuestName:    in.GuestName,
		GuestEmail:   in.GuestEmail,
		GuestCount:   in.GuestCount,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		Status:       status,
		TotalCents:   in.TotalCents,
		Notes:        in.Notes,
	}
}

// UpdateBookingInput holds optional mutation values; nil leaves a field
// unchanged.
type UpdateBookingInput struct {
	GuestName    *string              `json:"guest_name,omitempty"`
	GuestEmail   *string              `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestCount   *int                 `json:"guest_count,omitempty" validate:"omitempty,gte=1"`
	CheckInDate  *time.Time           `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time           `json:"check_out_date,omitempty"`
	Status       *enums.BookingStatus `json:"status,omitempty"`
	TotalCents   *int                 `json:"total_cents,omitempty" validate:"omitempty,gte=0"`
	Notes        *string              `json:"notes,omitempty"`
}

func (in UpdateBookingInput) fields() map[string]any {
	fields := map[string]any{}
	if in.GuestName != nil {
		fields["guest_name"] = *in.GuestName
	}
	if in.GuestEmail != nil {
		fields["guest_email"] = *in.GuestEmail
	}
	if in.GuestCount != nil {
		fields["guest_count"] = *in.GuestCount
	}
	if in.CheckInDate != nil {
		fields["check_in_date"] = *in.CheckInDate
	}
	if in.CheckOutDate != nil {
		fields["check_out_date"] = *in.CheckOutDate
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.TotalCents != nil {
		fields["total_cents"] = *in.TotalCents
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	return fields
}

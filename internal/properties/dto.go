package properties

import (
	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
)

// CreatePropertyInput holds the payload to list a new property. The
// structured address fields are canonical; display strings are derived.
type CreatePropertyInput struct {
	Name               string  `json:"name" validate:"required"`
	Description        *string `json:"description,omitempty"`
	AddressLine        string  `json:"address_line" validate:"required"`
	City               string  `json:"city" validate:"required"`
	State              string  `json:"state" validate:"required"`
	ZipCode            string  `json:"zip_code,omitempty"`
	Country            string  `json:"country,omitempty"`
	PricePerNightCents int     `json:"price_per_night_cents" validate:"gte=0"`
	Bedrooms           int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms          int     `json:"bathrooms" validate:"gte=0"`
	MaxGuests          int     `json:"max_guests" validate:"gte=0"`
	Amenities          *string `json:"amenities,omitempty"`
}

func (in CreatePropertyInput) toModel() *models.Property {
	country := in.Country
	if country == "" {
		country = "US"
	}
	return &models.Property{
		ID:                 uuid.New(),
		Name:               in.Name,
		Description:        in.Description,
		AddressLine:        in.AddressLine,
		City:               in.City,
		State:              in.State,
		ZipCode:            in.ZipCode,
		Country:            country,
		PricePerNightCents: in.PricePerNightCents,
		Bedrooms:           in.Bedrooms,
		Bathrooms:          in.Bathrooms,
		MaxGuests:          in.MaxGuests,
		Amenities:          in.Amenities,
	}
}

// UpdatePropertyInput holds optional mutation values; nil leaves a field
// unchanged.
type UpdatePropertyInput struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	AddressLine        *string `json:"address_line,omitempty"`
	City               *string `json:"city,omitempty"`
	State              *string `json:"state,omitempty"`
	ZipCode            *string `json:"zip_code,omitempty"`
	Country            *string `json:"country,omitempty"`
	PricePerNightCents *int    `json:"price_per_night_cents,omitempty" validate:"omitempty,gte=0"`
	Bedrooms           *int    `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms          *int    `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	MaxGuests          *int    `json:"max_guests,omitempty" validate:"omitempty,gte=0"`
	Amenities          *string `json:"amenities,omitempty"`
}

func (in UpdatePropertyInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.AddressLine != nil {
		fields["address_line"] = *in.AddressLine
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.State != nil {
		fields["state"] = *in.State
	}
	if in.ZipCode != nil {
		fields["zip_code"] = *in.ZipCode
	}
	if in.Country != nil {
		fields["country"] = *in.Country
	}
	if in.PricePerNightCents != nil {
		fields["price_per_night_cents"] = *in.PricePerNightCents
	}
	if in.Bedrooms != nil {
		fields["bedrooms"] = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		fields["bathrooms"] = *in.Bathrooms
	}
	if in.MaxGuests != nil {
		fields["max_guests"] = *in.MaxGuests
	}
	if in.Amenities != nil {
		fields["amenities"] = *in.Amenities
	}
	return fields
}

// CreateRoomInput holds the payload to add a room to a property.
type CreateRoomInput struct {
	PropertyID  uuid.UUID `json:"property_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	Description *string   `json:"description,omitempty"`
}

func (in CreateRoomInput) toModel() *models.Room {
	return &models.Room{
		ID:          uuid.New(),
		PropertyID:  in.PropertyID,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
	}
}

// UpdateRoomInput holds optional room mutation values.
type UpdateRoomInput struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (in UpdateRoomInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Type != nil {
		fields["type"] = *in.Type
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	return fields
}

// CreatePhotoInput holds the payload to add a gallery photo.
type CreatePhotoInput struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	URL        string    `json:"url" validate:"required,url"`
	Caption    *string   `json:"caption,omitempty"`
	Position   int       `json:"position" validate:"gte=0"`
}

func (in CreatePhotoInput) toModel() *models.PropertyPhoto {
	return &models.PropertyPhoto{
		ID:         uuid.New(),
		PropertyID: in.PropertyID,
		URL:        in.URL,
		Caption:    in.Caption,
		Position:   in.Position,
	}
}

// UpdatePhotoInput holds optional photo mutation values.
type UpdatePhotoInput struct {
	URL      *string `json:"url,omitempty" validate:"omitempty,url"`
	Caption  *string `json:"caption,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,gte=0"`
}

func (in UpdatePhotoInput) fields() map[string]any {
	fields := map[string]any{}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	if in.Caption != nil {
		fields["caption"] = *in.Caption
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}
	return fields
}

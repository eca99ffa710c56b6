package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/internal/validate"
	"github.com/staysuite/staysuite-backend/pkg/db"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
	"github.com/staysuite/staysuite-backend/pkg/metrics"
	"github.com/staysuite/staysuite-backend/pkg/pagination"
)

const entity = "booking"

// Service exposes booking management operations.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, filters ListFilters) ([]models.Booking, error)
	ListPage(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Booking, string, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StoreMetrics
}

// NewService constructs a bookings service instance.
func NewService(repo *Repository, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

// Create validates the reservation window and inserts the booking.
func (s *service) Create(ctx context.Context, input CreateBookingInput) (booking *models.Booking, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking status %q", input.Status))
	}
	if !input.CheckOutDate.After(input.CheckInDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check_out_date must be after check_in_date")
	}

	booking, err = s.repo.Create(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "property does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert booking")
	}
	return booking, nil
}

// GetByID returns the booking or a NOT_FOUND error.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (booking *models.Booking, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "get", start, err) }()

	booking, err = s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

// List returns bookings matching the filters in insertion order.
func (s *service) List(ctx context.Context, filters ListFilters) (rows []models.Booking, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "list", start, err) }()

	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking status %q", *filters.Status))
	}
	rows, err = s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return rows, nil
}

// ListPage returns one page of matching bookings plus the cursor for the
// next page, empty on the last one.
func (s *service) ListPage(ctx context.Context, filters ListFilters, page pagination.Params) (rows []models.Booking, next string, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "list", start, err) }()

	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking status %q", *filters.Status))
	}
	if _, cursorErr := pagination.ParseCursor(page.Cursor); cursorErr != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, cursorErr, "invalid cursor")
	}
	rows, next, err = s.repo.ListPage(ctx, filters, page)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return rows, next, nil
}

// Update merges the supplied fields, keeping the reservation window ordered.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBookingInput) (booking *models.Booking, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking status %q", *input.Status))
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	checkIn := existing.CheckInDate
	if input.CheckInDate != nil {
		checkIn = *input.CheckInDate
	}
	checkOut := existing.CheckOutDate
	if input.CheckOutDate != nil {
		checkOut = *input.CheckOutDate
	}
	if !checkOut.After(checkIn) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "check_out_date must be after check_in_date")
	}

	booking, err = s.repo.UpdateFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
	}
	return booking, nil
}

// Delete removes the booking; deleting an absent id is a no-op that
// reports false.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "delete", start, err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
	}
	return deleted, nil
}

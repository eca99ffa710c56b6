package bookings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
	"github.com/staysuite/staysuite-backend/pkg/pagination"
)

// Repository exposes booking persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a bookings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListFilters narrow List results. Nil fields match everything; set fields
// are combined with AND.
type ListFilters struct {
	PropertyID *uuid.UUID
	Status     *enums.BookingStatus
}

// List returns bookings matching the filters in insertion order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Booking, error) {
	qb := r.db.WithContext(ctx).Model(&models.Booking{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	var rows []models.Booking
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// ListPage returns one page of bookings ordered by (created_at, id). The
// returned cursor is empty on the last page.
func (r *Repository) ListPage(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Booking, string, error) {
	qb := r.db.WithContext(ctx).Model(&models.Booking{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		qb = qb.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(page.Limit)
	var rows []models.Booking
	if err := qb.Order("created_at, id").Limit(pagination.LimitWithBuffer(page.Limit)).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// FindByID loads a booking by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create inserts a new booking row.
func (r *Repository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateFields merges the supplied columns into an existing booking and
// returns the refreshed row. An empty map is an existence check.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Booking, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a booking by ID, reporting whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

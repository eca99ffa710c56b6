package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Repository exposes inventory item persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
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
	RoomID     *uuid.UUID
	Category   *string
	Condition  *enums.ItemCondition
}

// List returns inventory items matching the filters in insertion order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.InventoryItem, error) {
	qb := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.RoomID != nil {
		qb = qb.Where("room_id = ?", *filters.RoomID)
	}
	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if filters.Condition != nil {
		qb = qb.Where("condition = ?", *filters.Condition)
	}

	var rows []models.InventoryItem
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindByID loads an inventory item by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new inventory item row.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateFields merges the supplied columns into an existing item and returns
// the refreshed row. An empty map is an existence check.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.InventoryItem, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes an inventory item by ID, reporting whether a row was
// removed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package properties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
)

// Repository exposes persistence for properties, their rooms, and their
// photo gallery.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a properties repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListFilters narrow property List results. Nil fields match everything; set
// fields are combined with AND.
type ListFilters struct {
	City  *string
	State *string
}

// List returns properties matching the filters in insertion order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Property, error) {
	qb := r.db.WithContext(ctx).Model(&models.Property{})
	if filters.City != nil {
		qb = qb.Where("city = ?", *filters.City)
	}
	if filters.State != nil {
		qb = qb.Where("state = ?", *filters.State)
	}

	var rows []models.Property
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindByID loads a property by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// Create inserts a new property row.
func (r *Repository) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// UpdateFields merges the supplied columns into an existing property and
// returns the refreshed row. An empty map is an existence check.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Property, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a property by ID, reporting whether a row was removed.
// Dependent rooms, photos, bookings, tasks, and inventory items cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Property{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RoomFilters narrow room List results.
type RoomFilters struct {
	PropertyID *uuid.UUID
	Type       *string
}

// ListRooms returns rooms matching the filters in insertion order.
func (r *Repository) ListRooms(ctx context.Context, filters RoomFilters) ([]models.Room, error) {
	qb := r.db.WithContext(ctx).Model(&models.Room{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.Type != nil {
		qb = qb.Where("type = ?", *filters.Type)
	}

	var rows []models.Room
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindRoomByID loads a room by its UUID.
func (r *Repository) FindRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateRoom inserts a new room row.
func (r *Repository) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoomFields merges the supplied columns into an existing room.
func (r *Repository) UpdateRoomFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Room, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindRoomByID(ctx, id)
}

// DeleteRoom removes a room by ID, reporting whether a row was removed.
func (r *Repository) DeleteRoom(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Room{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// PhotoFilters narrow photo List results.
type PhotoFilters struct {
	PropertyID *uuid.UUID
}

// ListPhotos returns photos matching the filters in insertion order.
func (r *Repository) ListPhotos(ctx context.Context, filters PhotoFilters) ([]models.PropertyPhoto, error) {
	qb := r.db.WithContext(ctx).Model(&models.PropertyPhoto{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}

	var rows []models.PropertyPhoto
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindPhotoByID loads a photo by its UUID.
func (r *Repository) FindPhotoByID(ctx context.Context, id uuid.UUID) (*models.PropertyPhoto, error) {
	var photo models.PropertyPhoto
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// CreatePhoto inserts a new photo row.
func (r *Repository) CreatePhoto(ctx context.Context, photo *models.PropertyPhoto) (*models.PropertyPhoto, error) {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// UpdatePhotoFields merges the supplied columns into an existing photo.
func (r *Repository) UpdatePhotoFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.PropertyPhoto, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.PropertyPhoto{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindPhotoByID(ctx, id)
}

// DeletePhoto removes a photo by ID, reporting whether a row was removed.
func (r *Repository) DeletePhoto(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PropertyPhoto{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

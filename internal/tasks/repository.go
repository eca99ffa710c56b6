package tasks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Repository exposes task persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tasks repo bound to the provided GORM DB.
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
	PropertyID   *uuid.UUID
	RoomID       *uuid.UUID
	AssignedToID *uuid.UUID
	Status       *enums.TaskStatus
	Priority     *enums.TaskPriority
}

// List returns tasks matching the filters in insertion order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Task, error) {
	qb := r.db.WithContext(ctx).Model(&models.Task{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.RoomID != nil {
		qb = qb.Where("room_id = ?", *filters.RoomID)
	}
	if filters.AssignedToID != nil {
		qb = qb.Where("assigned_to_id = ?", *filters.AssignedToID)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if filters.Priority != nil {
		qb = qb.Where("priority = ?", *filters.Priority)
	}

	var rows []models.Task
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindByID loads a task by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a new task row.
func (r *Repository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateFields merges the supplied columns into an existing task and returns
// the refreshed row. An empty map is an existence check.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Task, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a task by ID, reporting whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Repository exposes persistence for dashboard accounts and their
// preferences.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListFilters narrow user List results. Nil fields match everything; set
// fields are combined with AND.
type ListFilters struct {
	Role *enums.UserRole
}

// List returns users matching the filters in insertion order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.User, error) {
	qb := r.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		qb = qb.Where("role = ?", *filters.Role)
	}

	var rows []models.User
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads a user by their unique email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFields merges the supplied columns into an existing user.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a user by ID. Their preference row cascades.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// PreferenceFilters narrow preference List results.
type PreferenceFilters struct {
	UserID *uuid.UUID
}

// ListPreferences returns preference rows matching the filters in insertion
// order.
func (r *Repository) ListPreferences(ctx context.Context, filters PreferenceFilters) ([]models.UserPreference, error) {
	qb := r.db.WithContext(ctx).Model(&models.UserPreference{})
	if filters.UserID != nil {
		qb = qb.Where("user_id = ?", *filters.UserID)
	}

	var rows []models.UserPreference
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindPreferenceByID loads a preference row by its UUID.
func (r *Repository) FindPreferenceByID(ctx context.Context, id uuid.UUID) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := r.db.WithContext(ctx).First(&pref, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// CreatePreference inserts a preference row. The unique index on user_id
// keeps it at one per account.
func (r *Repository) CreatePreference(ctx context.Context, pref *models.UserPreference) (*models.UserPreference, error) {
	if err := r.db.WithContext(ctx).Create(pref).Error; err != nil {
		return nil, err
	}
	return pref, nil
}

// UpdatePreferenceFields merges the supplied columns into an existing
// preference row.
func (r *Repository) UpdatePreferenceFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.UserPreference, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.UserPreference{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindPreferenceByID(ctx, id)
}

// DeletePreference removes a preference row by ID, reporting whether a row
// was removed.
func (r *Repository) DeletePreference(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.UserPreference{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package team

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Repository exposes persistence for team members and their shift schedules.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a team repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// MemberFilters narrow member List results. Nil fields match everything; set
// fields are combined with AND.
type MemberFilters struct {
	Role   *enums.TeamRole
	Active *bool
}

// ListMembers returns team members matching the filters in insertion order.
func (r *Repository) ListMembers(ctx context.Context, filters MemberFilters) ([]models.TeamMember, error) {
	qb := r.db.WithContext(ctx).Model(&models.TeamMember{})
	if filters.Role != nil {
		qb = qb.Where("role = ?", *filters.Role)
	}
	if filters.Active != nil {
		qb = qb.Where("active = ?", *filters.Active)
	}

	var rows []models.TeamMember
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindMemberByID loads a team member by their UUID.
func (r *Repository) FindMemberByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateMember inserts a new team member row.
func (r *Repository) CreateMember(ctx context.Context, member *models.TeamMember) (*models.TeamMember, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMemberFields merges the supplied columns into an existing member.
func (r *Repository) UpdateMemberFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.TeamMember, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindMemberByID(ctx, id)
}

// DeleteMember removes a team member by ID. Their schedules cascade away and
// their task assignments are cleared.
func (r *Repository) DeleteMember(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TeamMember{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ScheduleFilters narrow schedule List results.
type ScheduleFilters struct {
	TeamMemberID *uuid.UUID
	PropertyID   *uuid.UUID
	Status       *enums.ScheduleStatus
}

// ListSchedules returns schedules matching the filters in insertion order.
func (r *Repository) ListSchedules(ctx context.Context, filters ScheduleFilters) ([]models.TeamSchedule, error) {
	qb := r.db.WithContext(ctx).Model(&models.TeamSchedule{})
	if filters.TeamMemberID != nil {
		qb = qb.Where("team_member_id = ?", *filters.TeamMemberID)
	}
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	var rows []models.TeamSchedule
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindScheduleByID loads a schedule by its UUID.
func (r *Repository) FindScheduleByID(ctx context.Context, id uuid.UUID) (*models.TeamSchedule, error) {
	var schedule models.TeamSchedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CreateSchedule inserts a new schedule row.
func (r *Repository) CreateSchedule(ctx context.Context, schedule *models.TeamSchedule) (*models.TeamSchedule, error) {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

// UpdateScheduleFields merges the supplied columns into an existing schedule.
func (r *Repository) UpdateScheduleFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.TeamSchedule, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.TeamSchedule{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindScheduleByID(ctx, id)
}

// DeleteSchedule removes a schedule by ID, reporting whether a row was
// removed.
func (r *Repository) DeleteSchedule(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TeamSchedule{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

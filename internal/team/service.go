package team

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
)

const (
	entityMember   = "team_member"
	entitySchedule = "team_schedule"
)

// Service exposes team member and schedule management operations.
type Service interface {
	CreateMember(ctx context.Context, input CreateMemberInput) (*models.TeamMember, error)
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	ListMembers(ctx context.Context, filters MemberFilters) ([]models.TeamMember, error)
	UpdateMember(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*models.TeamMember, error)
	DeleteMember(ctx context.Context, id uuid.UUID) (bool, error)

	CreateSchedule(ctx context.Context, input CreateScheduleInput) (*models.TeamSchedule, error)
	GetScheduleByID(ctx context.Context, id uuid.UUID) (*models.TeamSchedule, error)
	ListSchedules(ctx context.Context, filters ScheduleFilters) ([]models.TeamSchedule, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, input UpdateScheduleInput) (*models.TeamSchedule, error)
	DeleteSchedule(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StoreMetrics
}

// NewService constructs a team service instance.
func NewService(repo *Repository, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("team repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) CreateMember(ctx context.Context, input CreateMemberInput) (member *models.TeamMember, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityMember, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid team role %q", input.Role))
	}

	member, err = s.repo.CreateMember(ctx, input.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert team member")
	}
	return member, nil
}

func (s *service) GetMemberByID(ctx context.Context, id uuid.UUID) (member *models.TeamMember, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityMember, "get", start, err) }()

	member, err = s.repo.FindMemberByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team member")
	}
	return member, nil
}

func (s *service) ListMembers(ctx context.Context, filters MemberFilters) (rows []models.TeamMember, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityMember, "list", start, err) }()

	if filters.Role != nil && !filters.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid team role %q", *filters.Role))
	}
	rows, err = s.repo.ListMembers(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list team members")
	}
	return rows, nil
}

func (s *service) UpdateMember(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (member *models.TeamMember, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityMember, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid team role %q", *input.Role))
	}

	member, err = s.repo.UpdateMemberFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update team member")
	}
	return member, nil
}

// DeleteMember removes a member. Their schedules go with them while task
// assignments are cleared, so the work itself survives.
func (s *service) DeleteMember(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityMember, "delete", start, err) }()

	deleted, err = s.repo.DeleteMember(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete team member")
	}
	return deleted, nil
}

func (s *service) CreateSchedule(ctx context.Context, input CreateScheduleInput) (schedule *models.TeamSchedule, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entitySchedule, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid schedule status %q", input.Status))
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_time must be after start_time")
	}

	schedule, err = s.repo.CreateSchedule(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced member, property, or task does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert schedule")
	}
	return schedule, nil
}

func (s *service) GetScheduleByID(ctx context.Context, id uuid.UUID) (schedule *models.TeamSchedule, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entitySchedule, "get", start, err) }()

	schedule, err = s.repo.FindScheduleByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule")
	}
	return schedule, nil
}

func (s *service) ListSchedules(ctx context.Context, filters ScheduleFilters) (rows []models.TeamSchedule, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entitySchedule, "list", start, err) }()

	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid schedule status %q", *filters.Status))
	}
	rows, err = s.repo.ListSchedules(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schedules")
	}
	return rows, nil
}

// UpdateSchedule merges the supplied fields, keeping the shift window
// ordered even when only one side is patched.
func (s *service) UpdateSchedule(ctx context.Context, id uuid.UUID, input UpdateScheduleInput) (schedule *models.TeamSchedule, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entitySchedule, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid schedule status %q", *input.Status))
	}

	existing, err := s.repo.FindScheduleByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load schedule")
	}

	startTime := existing.StartTime
	if input.StartTime != nil {
		startTime = *input.StartTime
	}
	endTime := existing.EndTime
	if input.EndTime != nil {
		endTime = *input.EndTime
	}
	if !endTime.After(startTime) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_time must be after start_time")
	}

	schedule, err = s.repo.UpdateScheduleFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "schedule not found")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced task does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update schedule")
	}
	return schedule, nil
}

func (s *service) DeleteSchedule(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entitySchedule, "delete", start, err) }()

	deleted, err = s.repo.DeleteSchedule(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete schedule")
	}
	return deleted, nil
}

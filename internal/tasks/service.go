package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staysuite/staysuite-backend/internal/validate"
	"github.com/staysuite/staysuite-backend/pkg/db"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
	"github.com/staysuite/staysuite-backend/pkg/metrics"
)

const entity = "task"

// Service exposes task management operations.
type Service interface {
	Create(ctx context.Context, input CreateTaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, filters ListFilters) ([]models.Task, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StoreMetrics
}

// NewService constructs a tasks service instance.
func NewService(repo *Repository, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tasks repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreateTaskInput) (task *models.Task, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid task status %q", input.Status))
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid task priority %q", input.Priority))
	}

	task, err = s.repo.Create(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced property, room, or assignee does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert task")
	}
	return task, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (task *models.Task, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "get", start, err) }()

	task, err = s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}
	return task, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (rows []models.Task, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "list", start, err) }()

	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid task status %q", *filters.Status))
	}
	if filters.Priority != nil && !filters.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid task priority %q", *filters.Priority))
	}
	rows, err = s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	return rows, nil
}

// Update merges the supplied fields. Moving a task into the completed status
// stamps CompletedAt; moving it back out clears the stamp.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (task *models.Task, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid task status %q", *input.Status))
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid task priority %q", *input.Priority))
	}

	fields := input.fields()
	if input.Status != nil {
		existing, findErr := s.repo.FindByID(ctx, id)
		if findErr != nil {
			if db.IsNotFound(findErr) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load task")
		}
		switch {
		case *input.Status == enums.TaskStatusCompleted && existing.Status != enums.TaskStatusCompleted:
			fields["completed_at"] = time.Now().UTC()
		case *input.Status != enums.TaskStatusCompleted && existing.Status == enums.TaskStatusCompleted:
			fields["completed_at"] = nil
		}
	}

	task, err = s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced room or assignee does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update task")
	}
	return task, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "delete", start, err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	return deleted, nil
}

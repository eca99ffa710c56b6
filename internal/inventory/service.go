package inventory

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

const entity = "inventory_item"

// Service exposes inventory management operations.
type Service interface {
	Create(ctx context.Context, input CreateItemInput) (*models.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, filters ListFilters) ([]models.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*models.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StoreMetrics
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (item *models.InventoryItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Condition != "" && !input.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item condition %q", input.Condition))
	}

	item, err = s.repo.Create(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced property or room does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert inventory item")
	}
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (item *models.InventoryItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "get", start, err) }()

	item, err = s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	return item, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (rows []models.InventoryItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "list", start, err) }()

	if filters.Condition != nil && !filters.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item condition %q", *filters.Condition))
	}
	rows, err = s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory items")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (item *models.InventoryItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Condition != nil && !input.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item condition %q", *input.Condition))
	}

	item, err = s.repo.UpdateFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced room does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entity, "delete", start, err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory item")
	}
	return deleted, nil
}

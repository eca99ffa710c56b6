package expenses

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
	entityExpense = "expense"
	entityReport  = "financial_report"
)

// Service exposes expense and financial report management operations.
type Service interface {
	Create(ctx context.Context, input CreateExpenseInput) (*models.Expense, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, filters ListFilters) ([]models.Expense, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	CreateReport(ctx context.Context, input CreateReportInput) (*models.FinancialReport, error)
	GetReportByID(ctx context.Context, id uuid.UUID) (*models.FinancialReport, error)
	ListReports(ctx context.Context, filters ReportFilters) ([]models.FinancialReport, error)
	UpdateReport(ctx context.Context, id uuid.UUID, input UpdateReportInput) (*models.FinancialReport, error)
	DeleteReport(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StoreMetrics
}

// NewService constructs an expenses service instance.
func NewService(repo *Repository, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expenses repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) Create(ctx context.Context, input CreateExpenseInput) (expense *models.Expense, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityExpense, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid expense status %q", input.Status))
	}

	expense, err = s.repo.Create(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "property does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert expense")
	}
	return expense, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (expense *models.Expense, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityExpense, "get", start, err) }()

	expense, err = s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expense")
	}
	return expense, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) (rows []models.Expense, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityExpense, "list", start, err) }()

	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid expense status %q", *filters.Status))
	}
	rows, err = s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateExpenseInput) (expense *models.Expense, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityExpense, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid expense status %q", *input.Status))
	}

	expense, err = s.repo.UpdateFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "property does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update expense")
	}
	return expense, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityExpense, "delete", start, err) }()

	deleted, err = s.repo.Delete(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	return deleted, nil
}

// CreateReport stores a summary over [start_date, end_date]. Omitted revenue
// or expense figures are computed from stored payments and expenses, and the
// net is always the difference of the two.
func (s *service) CreateReport(ctx context.Context, input CreateReportInput) (report *models.FinancialReport, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityReport, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date must not be before start_date")
	}

	revenue := 0
	if input.RevenueCents != nil {
		revenue = *input.RevenueCents
	} else {
		revenue, err = s.repo.SumPayments(ctx, input.PropertyID, input.StartDate, input.EndDate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum payments")
		}
	}

	spent := 0
	if input.ExpensesCents != nil {
		spent = *input.ExpensesCents
	} else {
		spent, err = s.repo.SumExpenses(ctx, input.PropertyID, input.StartDate, input.EndDate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum expenses")
		}
	}

	report, err = s.repo.CreateReport(ctx, &models.FinancialReport{
		ID:            uuid.New(),
		PropertyID:    input.PropertyID,
		Title:         input.Title,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		RevenueCents:  revenue,
		ExpensesCents: spent,
		NetCents:      revenue - spent,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "property does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert report")
	}
	return report, nil
}

func (s *service) GetReportByID(ctx context.Context, id uuid.UUID) (report *models.FinancialReport, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityReport, "get", start, err) }()

	report, err = s.repo.FindReportByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}
	return report, nil
}

func (s *service) ListReports(ctx context.Context, filters ReportFilters) (rows []models.FinancialReport, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityReport, "list", start, err) }()

	rows, err = s.repo.ListReports(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}
	return rows, nil
}

// UpdateReport merges the supplied fields, keeping the date range ordered
// and the net figure in sync.
func (s *service) UpdateReport(ctx context.Context, id uuid.UUID, input UpdateReportInput) (report *models.FinancialReport, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityReport, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindReportByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load report")
	}

	startDate := existing.StartDate
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	endDate := existing.EndDate
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	if endDate.Before(startDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date must not be before start_date")
	}

	revenue := existing.RevenueCents
	if input.RevenueCents != nil {
		revenue = *input.RevenueCents
	}
	spent := existing.ExpensesCents
	if input.ExpensesCents != nil {
		spent = *input.ExpensesCents
	}
	fields := input.fields()
	fields["net_cents"] = revenue - spent

	report, err = s.repo.UpdateReportFields(ctx, id, fields)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update report")
	}
	return report, nil
}

func (s *service) DeleteReport(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityReport, "delete", start, err) }()

	deleted, err = s.repo.DeleteReport(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete report")
	}
	return deleted, nil
}

package expenses

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Repository exposes persistence for expenses and financial reports.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an expenses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListFilters narrow expense List results. Nil fields match everything; set
// fields are combined with AND.
type ListFilters struct {
	PropertyID *uuid.UUID
	Category   *string
	Status     *enums.ExpenseStatus
}

// List returns expenses matching the filters in insertion order.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Expense, error) {
	qb := r.db.WithContext(ctx).Model(&models.Expense{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.Category != nil {
		qb = qb.Where("category = ?", *filters.Category)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	var rows []models.Expense
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindByID loads an expense by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// Create inserts a new expense row.
func (r *Repository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateFields merges the supplied columns into an existing expense.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Expense, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Expense{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes an expense by ID, reporting whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReportFilters narrow report List results.
type ReportFilters struct {
	PropertyID *uuid.UUID
}

// ListReports returns reports matching the filters in insertion order.
func (r *Repository) ListReports(ctx context.Context, filters ReportFilters) ([]models.FinancialReport, error) {
	qb := r.db.WithContext(ctx).Model(&models.FinancialReport{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}

	var rows []models.FinancialReport
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindReportByID loads a report by its UUID.
func (r *Repository) FindReportByID(ctx context.Context, id uuid.UUID) (*models.FinancialReport, error) {
	var report models.FinancialReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// CreateReport inserts a new report row.
func (r *Repository) CreateReport(ctx context.Context, report *models.FinancialReport) (*models.FinancialReport, error) {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateReportFields merges the supplied columns into an existing report.
func (r *Repository) UpdateReportFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.FinancialReport, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.FinancialReport{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindReportByID(ctx, id)
}

// DeleteReport removes a report by ID, reporting whether a row was removed.
func (r *Repository) DeleteReport(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FinancialReport{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SumPayments totals payments received in [start, end], optionally scoped to
// one property through the owning invoice.
func (r *Repository) SumPayments(ctx context.Context, propertyID *uuid.UUID, start, end time.Time) (int, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("payments.paid_at >= ? AND payments.paid_at <= ?", start, end)
	if propertyID != nil {
		qb = qb.Where("invoices.property_id = ?", *propertyID)
	}

	var total *int
	if err := qb.Select("SUM(payments.amount_cents)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// SumExpenses totals expenses incurred in [start, end], optionally scoped to
// one property.
func (r *Repository) SumExpenses(ctx context.Context, propertyID *uuid.UUID, start, end time.Time) (int, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("incurred_at >= ? AND incurred_at <= ?", start, end)
	if propertyID != nil {
		qb = qb.Where("property_id = ?", *propertyID)
	}

	var total *int
	if err := qb.Select("SUM(amount_cents)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

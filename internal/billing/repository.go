package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/pkg/db/models"
	"github.com/staysuite/staysuite-backend/pkg/enums"
)

// Repository exposes persistence for invoices, their line items, and
// payments.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a billing repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// InvoiceFilters narrow invoice List results. Nil fields match everything;
// set fields are combined with AND.
type InvoiceFilters struct {
	PropertyID *uuid.UUID
	BookingID  *uuid.UUID
	Status     *enums.InvoiceStatus
}

// ListInvoices returns invoices matching the filters in insertion order.
func (r *Repository) ListInvoices(ctx context.Context, filters InvoiceFilters) ([]models.Invoice, error) {
	qb := r.db.WithContext(ctx).Model(&models.Invoice{})
	if filters.PropertyID != nil {
		qb = qb.Where("property_id = ?", *filters.PropertyID)
	}
	if filters.BookingID != nil {
		qb = qb.Where("booking_id = ?", *filters.BookingID)
	}
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}

	var rows []models.Invoice
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindInvoiceByID loads an invoice by its UUID.
func (r *Repository) FindInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateInvoice inserts a new invoice row.
func (r *Repository) CreateInvoice(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoiceFields merges the supplied columns into an existing invoice.
func (r *Repository) UpdateInvoiceFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Invoice, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindInvoiceByID(ctx, id)
}

// DeleteInvoice removes an invoice by ID. Line items and payments cascade.
func (r *Repository) DeleteInvoice(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// LineItemFilters narrow line item List results.
type LineItemFilters struct {
	InvoiceID *uuid.UUID
}

// ListLineItems returns line items matching the filters in insertion order.
func (r *Repository) ListLineItems(ctx context.Context, filters LineItemFilters) ([]models.InvoiceLineItem, error) {
	qb := r.db.WithContext(ctx).Model(&models.InvoiceLineItem{})
	if filters.InvoiceID != nil {
		qb = qb.Where("invoice_id = ?", *filters.InvoiceID)
	}

	var rows []models.InvoiceLineItem
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindLineItemByID loads a line item by its UUID.
func (r *Repository) FindLineItemByID(ctx context.Context, id uuid.UUID) (*models.InvoiceLineItem, error) {
	var item models.InvoiceLineItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateLineItem inserts a new line item row.
func (r *Repository) CreateLineItem(ctx context.Context, item *models.InvoiceLineItem) (*models.InvoiceLineItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateLineItemFields merges the supplied columns into an existing line
// item.
func (r *Repository) UpdateLineItemFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.InvoiceLineItem, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.InvoiceLineItem{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindLineItemByID(ctx, id)
}

// DeleteLineItem removes a line item by ID, reporting whether a row was
// removed.
func (r *Repository) DeleteLineItem(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InvoiceLineItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RecomputeInvoiceTotal sums the invoice's line items into total_cents.
// Callers run this in the same transaction as the line item mutation.
func (r *Repository) RecomputeInvoiceTotal(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Update("total_cents", r.db.WithContext(ctx).
			Model(&models.InvoiceLineItem{}).
			Select("COALESCE(SUM(amount_cents), 0)").
			Where("invoice_id = ?", invoiceID),
		).Error
}

// PaymentFilters narrow payment List results.
type PaymentFilters struct {
	InvoiceID *uuid.UUID
}

// ListPayments returns payments matching the filters in insertion order.
func (r *Repository) ListPayments(ctx context.Context, filters PaymentFilters) ([]models.Payment, error) {
	qb := r.db.WithContext(ctx).Model(&models.Payment{})
	if filters.InvoiceID != nil {
		qb = qb.Where("invoice_id = ?", *filters.InvoiceID)
	}

	var rows []models.Payment
	err := qb.Order("rowid").Find(&rows).Error
	return rows, err
}

// FindPaymentByID loads a payment by its UUID.
func (r *Repository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreatePayment inserts a new payment row.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// UpdatePaymentFields merges the supplied columns into an existing payment.
func (r *Repository) UpdatePaymentFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Payment, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindPaymentByID(ctx, id)
}

// DeletePayment removes a payment by ID, reporting whether a row was
// removed.
func (r *Repository) DeletePayment(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Payment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

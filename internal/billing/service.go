package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/internal/validate"
	"github.com/staysuite/staysuite-backend/pkg/db"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
	"github.com/staysuite/staysuite-backend/pkg/metrics"
)

const (
	entityInvoice  = "invoice"
	entityLineItem = "invoice_line_item"
	entityPayment  = "payment"
)

// TxRunner executes fn inside a database transaction. *db.Client satisfies
// it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes invoice, line item, and payment management operations.
// Invoice totals are derived: every line item mutation recomputes the parent
// total in the same transaction.
type Service interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error)
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListInvoices(ctx context.Context, filters InvoiceFilters) ([]models.Invoice, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) (bool, error)

	CreateLineItem(ctx context.Context, input CreateLineItemInput) (*models.InvoiceLineItem, error)
	GetLineItemByID(ctx context.Context, id uuid.UUID) (*models.InvoiceLineItem, error)
	ListLineItems(ctx context.Context, filters LineItemFilters) ([]models.InvoiceLineItem, error)
	UpdateLineItem(ctx context.Context, id uuid.UUID, input UpdateLineItemInput) (*models.InvoiceLineItem, error)
	DeleteLineItem(ctx context.Context, id uuid.UUID) (bool, error)

	CreatePayment(ctx context.Context, input CreatePaymentInput) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, filters PaymentFilters) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*models.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo    *Repository
	tx      TxRunner
	metrics *metrics.StoreMetrics
}

// NewService constructs a billing service instance.
func NewService(repo *Repository, tx TxRunner, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("billing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("billing transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: m}, nil
}

func (s *service) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (invoice *models.Invoice, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityInvoice, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", input.Status))
	}

	model := input.toModel()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, txErr := repo.CreateInvoice(ctx, model); txErr != nil {
			return txErr
		}
		for _, entry := range input.LineItems {
			if _, txErr := repo.CreateLineItem(ctx, entry.toModel(model.ID)); txErr != nil {
				return txErr
			}
		}
		if len(input.LineItems) > 0 {
			if txErr := repo.RecomputeInvoiceTotal(ctx, model.ID); txErr != nil {
				return txErr
			}
		}
		var txErr error
		invoice, txErr = repo.FindInvoiceByID(ctx, model.ID)
		return txErr
	})
	if err != nil {
		if db.IsUniqueViolation(err, "invoice_number") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "invoice number already in use")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced property or booking does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert invoice")
	}
	return invoice, nil
}

func (s *service) GetInvoiceByID(ctx context.Context, id uuid.UUID) (invoice *models.Invoice, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityInvoice, "get", start, err) }()

	invoice, err = s.repo.FindInvoiceByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) ListInvoices(ctx context.Context, filters InvoiceFilters) (rows []models.Invoice, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityInvoice, "list", start, err) }()

	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", *filters.Status))
	}
	rows, err = s.repo.ListInvoices(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return rows, nil
}

func (s *service) UpdateInvoice(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (invoice *models.Invoice, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityInvoice, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid invoice status %q", *input.Status))
	}

	invoice, err = s.repo.UpdateInvoiceFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		if db.IsUniqueViolation(err, "invoice_number") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "invoice number already in use")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced booking does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice")
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice along with its line items and payments.
func (s *service) DeleteInvoice(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityInvoice, "delete", start, err) }()

	deleted, err = s.repo.DeleteInvoice(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
	}
	return deleted, nil
}

func (s *service) CreateLineItem(ctx context.Context, input CreateLineItemInput) (item *models.InvoiceLineItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityLineItem, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var txErr error
		item, txErr = repo.CreateLineItem(ctx, input.toModel())
		if txErr != nil {
			return txErr
		}
		return repo.RecomputeInvoiceTotal(ctx, input.InvoiceID)
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invoice does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert line item")
	}
	return item, nil
}

func (s *service) GetLineItemByID(ctx context.Context, id uuid.UUID) (item *models.InvoiceLineItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityLineItem, "get", start, err) }()

	item, err = s.repo.FindLineItemByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line item")
	}
	return item, nil
}

func (s *service) ListLineItems(ctx context.Context, filters LineItemFilters) (rows []models.InvoiceLineItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityLineItem, "list", start, err) }()

	rows, err = s.repo.ListLineItems(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list line items")
	}
	return rows, nil
}

// UpdateLineItem merges the supplied fields, rederives the row amount, and
// recomputes the parent invoice total, all in one transaction.
func (s *service) UpdateLineItem(ctx context.Context, id uuid.UUID, input UpdateLineItemInput) (item *models.InvoiceLineItem, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityLineItem, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, txErr := repo.FindLineItemByID(ctx, id)
		if txErr != nil {
			return txErr
		}

		quantity := existing.Quantity
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		unitPrice := existing.UnitPriceCents
		if input.UnitPriceCents != nil {
			unitPrice = *input.UnitPriceCents
		}
		fields := input.fields()
		fields["amount_cents"] = quantity * unitPrice

		item, txErr = repo.UpdateLineItemFields(ctx, id, fields)
		if txErr != nil {
			return txErr
		}
		return repo.RecomputeInvoiceTotal(ctx, existing.InvoiceID)
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line item")
	}
	return item, nil
}

// DeleteLineItem removes the row and recomputes the parent invoice total in
// the same transaction.
func (s *service) DeleteLineItem(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityLineItem, "delete", start, err) }()

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, txErr := repo.FindLineItemByID(ctx, id)
		if txErr != nil {
			if db.IsNotFound(txErr) {
				deleted = false
				return nil
			}
			return txErr
		}
		deleted, txErr = repo.DeleteLineItem(ctx, id)
		if txErr != nil {
			return txErr
		}
		return repo.RecomputeInvoiceTotal(ctx, existing.InvoiceID)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete line item")
	}
	return deleted, nil
}

func (s *service) CreatePayment(ctx context.Context, input CreatePaymentInput) (payment *models.Payment, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPayment, "create", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	payment, err = s.repo.CreatePayment(ctx, input.toModel())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invoice does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert payment")
	}
	return payment, nil
}

func (s *service) GetPaymentByID(ctx context.Context, id uuid.UUID) (payment *models.Payment, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPayment, "get", start, err) }()

	payment, err = s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func (s *service) ListPayments(ctx context.Context, filters PaymentFilters) (rows []models.Payment, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPayment, "list", start, err) }()

	rows, err = s.repo.ListPayments(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return rows, nil
}

func (s *service) UpdatePayment(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (payment *models.Payment, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPayment, "update", start, err) }()

	if err = validate.Struct(input); err != nil {
		return nil, err
	}

	payment, err = s.repo.UpdatePaymentFields(ctx, id, input.fields())
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
	}
	return payment, nil
}

func (s *service) DeletePayment(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	start := time.Now()
	defer func() { metrics.Track(s.metrics, entityPayment, "delete", start, err) }()

	deleted, err = s.repo.DeletePayment(ctx, id)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
	}
	return deleted, nil
}

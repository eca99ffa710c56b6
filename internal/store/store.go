package store

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/staysuite/staysuite-backend/internal/billing"
	"github.com/staysuite/staysuite-backend/internal/bookings"
	"github.com/staysuite/staysuite-backend/internal/expenses"
	"github.com/staysuite/staysuite-backend/internal/inventory"
	"github.com/staysuite/staysuite-backend/internal/properties"
	"github.com/staysuite/staysuite-backend/internal/seed"
	"github.com/staysuite/staysuite-backend/internal/tasks"
	"github.com/staysuite/staysuite-backend/internal/team"
	"github.com/staysuite/staysuite-backend/internal/users"
	"github.com/staysuite/staysuite-backend/pkg/config"
	"github.com/staysuite/staysuite-backend/pkg/db"
	"github.com/staysuite/staysuite-backend/pkg/db/models"
	pkgerrors "github.com/staysuite/staysuite-backend/pkg/errors"
	"github.com/staysuite/staysuite-backend/pkg/logger"
	"github.com/staysuite/staysuite-backend/pkg/metrics"
)

// Store bundles every entity service over one in-memory database. It is the
// single surface the dashboard's data layer talks to.
type Store struct {
	client *db.Client
	cfg    *config.Config
	logg   *logger.Logger

	Properties properties.Service
	Bookings   bookings.Service
	Tasks      tasks.Service
	Inventory  inventory.Service
	Team       team.Service
	Billing    billing.Service
	Expenses   expenses.Service
	Users      users.Service
}

// Open boots the database, wires every service, and seeds the sample
// dataset when configured to.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, fmt.Errorf("opening store database: %w", err)
	}

	m := metrics.NewStoreMetrics(reg)
	conn := client.DB()

	propertiesSvc, err := properties.NewService(properties.NewRepository(conn), m)
	if err != nil {
		return nil, err
	}
	bookingsSvc, err := bookings.NewService(bookings.NewRepository(conn), m)
	if err != nil {
		return nil, err
	}
	tasksSvc, err := tasks.NewService(tasks.NewRepository(conn), m)
	if err != nil {
		return nil, err
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn), m)
	if err != nil {
		return nil, err
	}
	teamSvc, err := team.NewService(team.NewRepository(conn), m)
	if err != nil {
		return nil, err
	}
	billingSvc, err := billing.NewService(billing.NewRepository(conn), client, m)
	if err != nil {
		return nil, err
	}
	expensesSvc, err := expenses.NewService(expenses.NewRepository(conn), m)
	if err != nil {
		return nil, err
	}
	usersSvc, err := users.NewService(users.NewRepository(conn), cfg.Password, m)
	if err != nil {
		return nil, err
	}

	s := &Store{
		client:     client,
		cfg:        cfg,
		logg:       logg,
		Properties: propertiesSvc,
		Bookings:   bookingsSvc,
		Tasks:      tasksSvc,
		Inventory:  inventorySvc,
		Team:       teamSvc,
		Billing:    billingSvc,
		Expenses:   expensesSvc,
		Users:      usersSvc,
	}

	if cfg.Seed.SampleData {
		if _, err := seed.Apply(ctx, conn, cfg.Password, logg); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("seeding sample data: %w", err)
		}
	}
	return s, nil
}

// truncationOrder lists every entity child-first so foreign keys never block
// a wipe.
func truncationOrder() []any {
	return []any{
		&models.Payment{},
		&models.InvoiceLineItem{},
		&models.Invoice{},
		&models.TeamSchedule{},
		&models.Task{},
		&models.InventoryItem{},
		&models.Booking{},
		&models.PropertyPhoto{},
		&models.Room{},
		&models.UserPreference{},
		&models.User{},
		&models.Expense{},
		&models.FinancialReport{},
		&models.TeamMember{},
		&models.Property{},
	}
}

// Reset wipes every entity in one transaction and reseeds the sample
// dataset when configured to, returning the store to its boot state.
func (s *Store) Reset(ctx context.Context) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, model := range truncationOrder() {
			res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset store")
	}

	if s.cfg.Seed.SampleData {
		if _, err := seed.Apply(ctx, s.client.DB(), s.cfg.Password, s.logg); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reseed store")
		}
	}
	if s.logg != nil {
		s.logg.Info(ctx, "store reset")
	}
	return nil
}

// Counts reports the number of rows per entity, keyed by table name.
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(truncationOrder()))
	conn := s.client.DB().WithContext(ctx)
	for _, model := range truncationOrder() {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(model); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve table name")
		}
		var count int64
		if err := conn.Model(model).Count(&count).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count rows")
		}
		counts[stmt.Schema.Table] = count
	}
	return counts, nil
}

// Ping verifies the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close releases the backing database. For the in-memory DSN this discards
// all state.
func (s *Store) Close() error {
	return s.client.Close()
}

// Package store persists portfolio snapshots in a SQL database through gorm.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neorent/forecast/internal/domain"
)

// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and postgres
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Store reads and writes portfolio snapshots
type Store struct {
	db *gorm.DB
}

// Dialector returns the gorm dialector of a driver name
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "":
		return sqlite.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Open connects to the database and migrates the snapshot tables
func Open(driver, dsn string) (*Store, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	s := New(db)
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// New wraps an open connection. Callers own migration.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the snapshot tables
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate snapshot tables: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Import replaces the stored snapshot and charge configuration with cfg.
// Tax tables and simulations are not persisted.
func (s *Store) Import(ctx context.Context, cfg *domain.Configuration) error {
	if cfg == nil {
		return errors.New("nothing to import")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range Models {
			if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		properties := make([]PropertyRow, 0, len(cfg.Properties))
		for _, p := range cfg.Properties {
			properties = append(properties, newPropertyRow(p))
		}
		occupants := make([]OccupantRow, 0, len(cfg.Tenants)+len(cfg.Roommates))
		for _, t := range cfg.Tenants {
			occupants = append(occupants, newOccupantRow(KindTenant, t))
		}
		for _, r := range cfg.Roommates {
			occupants = append(occupants, newOccupantRow(KindRoommate, r))
		}
		payments := make([]PaymentRow, 0, len(cfg.Payments))
		for _, p := range cfg.Payments {
			payments = append(payments, newPaymentRow(p))
		}
		charges := make([]ChargeRow, 0, len(cfg.Charges))
		for _, c := range cfg.Charges {
			charges = append(charges, newChargeRow(c))
		}

		if err := createAll(tx, properties); err != nil {
			return fmt.Errorf("failed to import properties: %w", err)
		}
		if err := createAll(tx, occupants); err != nil {
			return fmt.Errorf("failed to import occupants: %w", err)
		}
		if err := createAll(tx, payments); err != nil {
			return fmt.Errorf("failed to import payments: %w", err)
		}
		if err := createAll(tx, charges); err != nil {
			return fmt.Errorf("failed to import charges: %w", err)
		}
		if err := createAll(tx, chargeConfigRows(cfg.ChargesConfig)); err != nil {
			return fmt.Errorf("failed to import charge configuration: %w", err)
		}
		return nil
	})
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 100).Error
}

// Load reads the stored snapshot back in insertion order
func (s *Store) Load(ctx context.Context) (*domain.Configuration, error) {
	db := s.db.WithContext(ctx).Order("id").Session(&gorm.Session{})

	var properties []PropertyRow
	if err := db.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	var occupants []OccupantRow
	if err := db.Find(&occupants).Error; err != nil {
		return nil, fmt.Errorf("failed to load occupants: %w", err)
	}
	var payments []PaymentRow
	if err := db.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	var charges []ChargeRow
	if err := db.Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("failed to load charges: %w", err)
	}
	var configs []ChargeConfigRow
	if err := db.Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("failed to load charge configuration: %w", err)
	}

	cfg := &domain.Configuration{ChargesConfig: chargesConfigTable(configs)}
	for _, r := range properties {
		cfg.Properties = append(cfg.Properties, r.record())
	}
	for _, r := range occupants {
		switch r.Kind {
		case KindRoommate:
			cfg.Roommates = append(cfg.Roommates, r.record())
		default:
			cfg.Tenants = append(cfg.Tenants, r.record())
		}
	}
	for _, r := range payments {
		cfg.Payments = append(cfg.Payments, r.record())
	}
	for _, r := range charges {
		cfg.Charges = append(cfg.Charges, r.record())
	}
	return cfg, nil
}

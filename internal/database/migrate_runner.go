package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"forumapi/internal/middleware"

	"gorm.io/gorm"
)

// AppliedMigration is one row of the schema_migrations ledger.
type AppliedMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName pins the ledger table name.
func (AppliedMigration) TableName() string { return "schema_migrations" }

// Migrator applies and reverts the embedded SQL migrations, recording each
// step in the ledger inside the same transaction as its script.
type Migrator struct {
	db         *gorm.DB
	registered []Migration
}

// NewMigrator returns a Migrator over every registered migration.
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db, registered: migrations}
}

// Applied lists ledger versions in ascending order. A database that has
// never been migrated reports none.
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable(&AppliedMigration{}) {
		return []int{}, nil
	}
	var versions []int
	if err := db.Model(&AppliedMigration{}).Order("version").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return versions, nil
}

// Pending lists registered migrations missing from the ledger.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	var pending []Migration
	for _, mig := range m.registered {
		if !slices.Contains(applied, mig.Version) {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Up applies every pending migration in version order and reports how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.db.WithContext(ctx).AutoMigrate(&AppliedMigration{}); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}
	if err := validateAppliedVersions(applied, m.registered); err != nil {
		return 0, err
	}

	ran := 0
	for _, mig := range m.registered {
		if slices.Contains(applied, mig.Version) {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mig.UpScript).Error; err != nil {
				return err
			}
			return tx.Create(&AppliedMigration{Version: mig.Version, Name: mig.Name}).Error
		})
		if err != nil {
			return ran, fmt.Errorf("apply %s: %w", mig.String(), err)
		}
		middleware.Logger.Info("migration applied", slog.Int("version", mig.Version), slog.String("name", mig.Name))
		ran++
	}
	return ran, nil
}

// Down reverts one applied migration.
func (m *Migrator) Down(ctx context.Context, version int) error {
	idx := slices.IndexFunc(m.registered, func(mig Migration) bool { return mig.Version == version })
	if idx < 0 {
		return fmt.Errorf("migration version %d not found", version)
	}
	mig := m.registered[idx]
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(mig.DownScript).Error; err != nil {
			return err
		}
		return tx.Delete(&AppliedMigration{}, "version = ?", version).Error
	})
	if err != nil {
		return fmt.Errorf("revert %s: %w", mig.String(), err)
	}
	middleware.Logger.Info("migration reverted", slog.Int("version", version), slog.String("name", mig.Name))
	return nil
}

// RunMigrations brings db up to the newest registered migration.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	_, err := NewMigrator(db).Up(ctx)
	return err
}

// RollbackMigration reverts the migration with the given version.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	return NewMigrator(db).Down(ctx, version)
}

// validateAppliedVersions fails when the ledger holds versions this build
// does not know, which means the database is ahead of the binary.
func validateAppliedVersions(applied []int, registered []Migration) error {
	var unknown []string
	for _, version := range slices.Sorted(slices.Values(applied)) {
		if !slices.ContainsFunc(registered, func(m Migration) bool { return m.Version == version }) {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("database is ahead of this build, unknown migrations: %s", strings.Join(unknown, ", "))
	}
	return nil
}

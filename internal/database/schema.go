package database

import (
	"context"
	"fmt"
	"log/slog"

	"forumapi/internal/config"
	"forumapi/internal/middleware"

	"gorm.io/gorm"
)

// SchemaStatus reports what ApplySchema would do and which migrations are pending.
type SchemaStatus struct {
	Mode              string
	Environment       string
	AppliedVersions   []int
	PendingMigrations []Migration
}

func schemaMode(cfg *config.Config) (string, error) {
	switch cfg.DBSchemaMode {
	case config.SchemaModeSQL:
		return config.SchemaModeSQL, nil
	case config.SchemaModeAuto:
		return config.SchemaModeAuto, nil
	case "":
		if cfg.IsProduction() {
			return config.SchemaModeSQL, nil
		}
		return config.SchemaModeAuto, nil
	default:
		return "", fmt.Errorf("unsupported DB_SCHEMA_MODE %q", cfg.DBSchemaMode)
	}
}

// ApplySchema brings the schema up to date using SQL migrations or GORM AutoMigrate.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	mode, err := schemaMode(cfg)
	if err != nil {
		return err
	}

	if mode == config.SchemaModeSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
		return nil
	}

	if cfg.IsProduction() {
		middleware.Logger.Warn("DB_SCHEMA_MODE=auto in production; review schema diffs before deploying")
	}
	middleware.Logger.Info("Running GORM AutoMigrate", slog.String("env", cfg.Env))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GetSchemaStatus lists applied and pending SQL migrations.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	mode, err := schemaMode(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{Mode: mode, Environment: cfg.Env}

	migrator := NewMigrator(db)
	if status.AppliedVersions, err = migrator.Applied(ctx); err != nil {
		return nil, err
	}
	if status.PendingMigrations, err = migrator.Pending(ctx); err != nil {
		return nil, err
	}

	return status, nil
}

// Command migrate runs schema operations for the forum database.
//
//	migrate up            apply pending SQL migrations
//	migrate auto          sync tables from the GORM models
//	migrate status        list applied and pending migrations
//	migrate down VERSION  revert one migration
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"forumapi/internal/config"
	"forumapi/internal/database"

	"gorm.io/gorm"
)

type command func(ctx context.Context, db *gorm.DB, cfg *config.Config, args []string) error

var commands = map[string]command{
	"up":     migrateUp,
	"auto":   migrateAuto,
	"status": migrateStatus,
	"down":   migrateDown,
}

var errUsage = errors.New("usage: migrate <up|auto|status|down VERSION>")

func main() {
	flag.Parse()
	if err := dispatch(flag.Args()); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func dispatch(args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	return cmd(context.Background(), db, cfg, args[1:])
}

func migrateUp(ctx context.Context, db *gorm.DB, _ *config.Config, _ []string) error {
	ran, err := database.NewMigrator(db).Up(ctx)
	if err != nil {
		return err
	}
	log.Printf("%d migration(s) applied", ran)
	return nil
}

func migrateAuto(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string) error {
	cfg.DBSchemaMode = config.SchemaModeAuto
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return err
	}
	log.Print("models synced")
	return nil
}

func migrateStatus(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string) error {
	status, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return err
	}
	log.Printf("schema mode %s (%s): %d applied, %d pending",
		status.Mode, status.Environment, len(status.AppliedVersions), len(status.PendingMigrations))
	for _, m := range status.PendingMigrations {
		log.Printf("  pending %s", m.String())
	}
	return nil
}

func migrateDown(ctx context.Context, db *gorm.DB, _ *config.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("version must be a number, got %q", args[0])
	}
	m := database.GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("no migration with version %d", version)
	}
	if err := database.NewMigrator(db).Down(ctx, version); err != nil {
		return err
	}
	log.Printf("reverted %s", m.String())
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/mediflow-ai/mediflow/internal/config"
	"github.com/mediflow-ai/mediflow/pkg/database"
	"github.com/mediflow-ai/mediflow/pkg/logger"
)

// mediflow-migrate applies the relational schema for deployments that
// persist the clinical data set in PostgreSQL.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(db, log); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	log.Info("migration complete")
	return nil
}

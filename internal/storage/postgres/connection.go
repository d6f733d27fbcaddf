package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/printcon-atlas/atlas-backend/config"
	_ "github.com/lib/pq"
)

// NewConnection opens the database/sql handle used by the submissions
// repository.
func NewConnection(ctx context.Context, cfg config.SubmissionsConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("SUBMISSIONS_DSN is not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

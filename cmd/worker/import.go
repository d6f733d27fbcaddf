package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/printcon-atlas/atlas-backend/internal/bootstrap"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/loader"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/repository"
)

type importOptions struct {
	csvPath  string
	dsn      string
	maxConns int32
}

func newImportCommand() *cobra.Command {
	var opt importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the Postgres catalog table with the rows of a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opt.dsn == "" {
				return fmt.Errorf("--dsn or DB_DSN is required")
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), opt)
		},
	}

	cmd.Flags().StringVar(&opt.csvPath, "csv", "projects.csv", "catalog CSV file")
	cmd.Flags().StringVar(&opt.dsn, "dsn", envOr("DB_DSN", ""), "Postgres DSN")
	cmd.Flags().Int32Var(&opt.maxConns, "max-conns", 4, "maximum Postgres connections")
	return cmd
}

// runImport reads the CSV before connecting, so a bad file never touches the table.
func runImport(ctx context.Context, w io.Writer, opt importOptions) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	cat, stats, err := loader.LoadFile(opt.csvPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Read %s: %d rows, %d kept, %d dropped\n", opt.csvPath, stats.Rows, stats.Kept, stats.Dropped)

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: opt.dsn, MaxConns: opt.maxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := repository.NewRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	start := time.Now()
	n, err := repo.ReplaceAll(ctx, cat.Projects())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Imported %d projects in %s\n", n, time.Since(start).Round(time.Millisecond))
	return nil
}

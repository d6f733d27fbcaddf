package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printcon-atlas/atlas-backend/config"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/loader"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/repository"
	catalogsvc "github.com/printcon-atlas/atlas-backend/internal/catalog/service"
)

// LoadCatalog builds the catalog holder for the configured source. A source
// that cannot be read leaves the holder with an empty catalog so the API
// still starts.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig, db *pgxpool.Pool) (*catalogsvc.Holder, error) {
	var load catalogsvc.LoadFunc

	switch cfg.Source {
	case config.CatalogSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("catalog source postgres needs a database")
		}
		repo := repository.NewRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		load = repo.LoadAll
	default:
		path := cfg.Path
		load = func(context.Context) (*domain.Catalog, error) {
			cat, stats, err := loader.LoadFile(path)
			if err != nil {
				return nil, err
			}
			log.Printf("catalog: %s rows=%d kept=%d dropped=%d", path, stats.Rows, stats.Kept, stats.Dropped)
			return cat, nil
		}
	}

	initial, err := load(ctx)
	if err != nil {
		log.Printf("catalog: initial load failed, starting empty: %v", err)
		initial = domain.Empty()
	}
	return catalogsvc.NewHolder(initial, load), nil
}

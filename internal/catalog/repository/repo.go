package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
)

const defaultBatchSize = 500

const schema = `
create table if not exists catalog_projects (
    position     integer primary key,
    name         text not null,
    year         integer not null,
    country      text not null,
    city         text not null default '',
    organization text not null,
    material     text not null,
    category     text not null,
    latitude     double precision,
    longitude    double precision,
    description  text not null default '',
    link         text not null default '',
    imported_at  timestamptz not null default now()
);
`

var columns = []string{
	"position", "name", "year", "country", "city", "organization", "material",
	"category", "latitude", "longitude", "description", "link",
}

// Repo persists the curated catalog in Postgres so every replica serves the same rows.
type Repo struct {
	db        *pgxpool.Pool
	batchSize int
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db, batchSize: defaultBatchSize}
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}
	return nil
}

// ReplaceAll swaps the stored catalog for rows inside one transaction.
func (r *Repo) ReplaceAll(ctx context.Context, rows []domain.Project) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `delete from catalog_projects`); err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}

	batch := make([][]any, 0, r.batchSize)
	for i, p := range rows {
		batch = append(batch, []any{
			i, p.Name, p.Year, p.Country, p.City, p.Organization, p.Material,
			string(p.Category), p.Latitude, p.Longitude, p.Description, p.Link,
		})
		if len(batch) >= r.batchSize {
			if err := flushBatch(ctx, tx, batch); err != nil {
				return 0, err
			}
			batch = batch[:0]
		}
	}
	if err := flushBatch(ctx, tx, batch); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(rows), nil
}

// LoadAll returns the stored catalog in its original spreadsheet order.
func (r *Repo) LoadAll(ctx context.Context) (*domain.Catalog, error) {
	const q = `
select name, year, country, city, organization, material, category,
       latitude, longitude, description, link
from catalog_projects
order by position;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 256)
	for rows.Next() {
		var (
			p        domain.Project
			category string
		)
		if err := rows.Scan(
			&p.Name, &p.Year, &p.Country, &p.City, &p.Organization, &p.Material, &category,
			&p.Latitude, &p.Longitude, &p.Description, &p.Link,
		); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		if c, ok := domain.ParseCategory(category); ok {
			p.Category = c
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return domain.NewCatalog(out), nil
}

func flushBatch(ctx context.Context, tx pgx.Tx, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("insert into catalog_projects (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") values ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", len(args)+j+1)
		}
		sb.WriteString(")")
		args = append(args, row...)
	}

	if _, err := tx.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert catalog batch: %w", err)
	}
	return nil
}

package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"procurement-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

// Catalog source kinds
const (
	SourceStatic   = "static"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Load builds the catalog from the configured source. The result is
// immutable for the process lifetime regardless of where it came from.
func Load(ctx context.Context, source, file, databaseURL string) (*Catalog, error) {
	switch source {
	case SourceFile:
		return loadFile(file)
	case SourcePostgres:
		return loadPostgres(ctx, databaseURL)
	default:
		return New(DefaultItems()), nil
	}
}

// loadFile reads catalog items from a YAML file
func loadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc struct {
		Items []models.CatalogItem `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no items", path)
	}

	return New(doc.Items), nil
}

// catalogRow mirrors the catalog_items table; tags are stored comma-separated
type catalogRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Store        string  `db:"store"`
	Price        float64 `db:"price"`
	DeliveryDays float64 `db:"delivery_days"`
	Category     string  `db:"category"`
	Tags         string  `db:"tags"`
}

// loadPostgres reads catalog items once from Postgres at startup
func loadPostgres(ctx context.Context, databaseURL string) (*Catalog, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	db.SetConnMaxLifetime(time.Minute)

	var rows []catalogRow
	err = db.SelectContext(ctx, &rows,
		"SELECT id, name, store, price, delivery_days, category, tags FROM catalog_items ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog_items table is empty")
	}

	items := make([]models.CatalogItem, 0, len(rows))
	for _, row := range rows {
		var tags []string
		if row.Tags != "" {
			tags = strings.Split(row.Tags, ",")
		}
		items = append(items, models.CatalogItem{
			ID:           row.ID,
			Name:         row.Name,
			Store:        row.Store,
			Price:        row.Price,
			DeliveryDays: row.DeliveryDays,
			Category:     row.Category,
			Tags:         tags,
		})
	}

	return New(items), nil
}

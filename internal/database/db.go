package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mswatii/cs2-tradeup/internal/catalog"
	"github.com/mswatii/cs2-tradeup/internal/models"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Database struct {
	pool *pgxpool.Pool
}

// NewDatabase creates a new database connection
func NewDatabase(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Database{pool: pool}, nil
}

// Close closes the database connection
func (db *Database) Close() {
	db.pool.Close()
}

// CreateTables creates the catalog tables if they don't exist
func (db *Database) CreateTables(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			kind VARCHAR(50) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating collections table: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS skins (
			id VARCHAR(255) PRIMARY KEY,
			collection_id VARCHAR(255) NOT NULL REFERENCES collections(id),
			rarity SMALLINT NOT NULL CHECK (rarity BETWEEN 1 AND 7),
			variant VARCHAR(20) NOT NULL,
			weapon_label VARCHAR(255) NOT NULL DEFAULT '',
			display_name VARCHAR(255) NOT NULL DEFAULT '',
			category VARCHAR(255) NOT NULL DEFAULT '',
			image_ref TEXT NOT NULL DEFAULT '',
			min_float DOUBLE PRECISION NOT NULL,
			max_float DOUBLE PRECISION NOT NULL,
			position INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating skins table: %w", err)
	}

	return nil
}

// UpsertCollection inserts or updates a collection
func (db *Database) UpsertCollection(ctx context.Context, coll models.Collection) error {
	return upsertCollection(ctx, db.pool, coll)
}

// UpsertSkin inserts or updates a skin at the given catalog position
func (db *Database) UpsertSkin(ctx context.Context, item models.Item, position int) error {
	return upsertSkin(ctx, db.pool, item, position)
}

func upsertCollection(ctx context.Context, q querier, coll models.Collection) error {
	_, err := q.Exec(ctx, `
		INSERT INTO collections (id, name, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			name = $2,
			kind = $3,
			updated_at = NOW()
	`, coll.ID, coll.Name, string(coll.Kind))
	if err != nil {
		return fmt.Errorf("error upserting collection %s: %w", coll.ID, err)
	}
	return nil
}

func upsertSkin(ctx context.Context, q querier, item models.Item, position int) error {
	_, err := q.Exec(ctx, `
		INSERT INTO skins (
			id, collection_id, rarity, variant, weapon_label, display_name,
			category, image_ref, min_float, max_float, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id)
		DO UPDATE SET
			collection_id = $2,
			rarity = $3,
			variant = $4,
			weapon_label = $5,
			display_name = $6,
			category = $7,
			image_ref = $8,
			min_float = $9,
			max_float = $10,
			position = $11,
			updated_at = NOW()
	`,
		item.ID, item.CollectionID, int(item.Rarity), item.Variant.String(), item.WeaponLabel, item.DisplayName,
		item.Category, item.ImageRef, item.Wear.Min, item.Wear.Max, position,
	)
	if err != nil {
		return fmt.Errorf("error upserting skin %s: %w", item.ID, err)
	}
	return nil
}

// SaveCatalog replaces the stored catalog with cat in one transaction.
// Skins absent from cat are removed; collections are only upserted.
func (db *Database) SaveCatalog(ctx context.Context, cat *catalog.Catalog) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		for _, coll := range cat.Collections() {
			if err := upsertCollection(ctx, tx, coll); err != nil {
				return err
			}
		}
		items := cat.Items()
		ids := make([]string, len(items))
		for i, item := range items {
			if err := upsertSkin(ctx, tx, item, i); err != nil {
				return err
			}
			ids[i] = item.ID
		}
		if _, err := tx.Exec(ctx, `DELETE FROM skins WHERE NOT (id = ANY($1))`, ids); err != nil {
			return fmt.Errorf("error pruning skins: %w", err)
		}
		return nil
	})
}

// LoadCollections returns collections ordered by their first skin
func (db *Database) LoadCollections(ctx context.Context) ([]models.Collection, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT c.id, c.name, c.kind
		FROM collections c
		LEFT JOIN skins s ON s.collection_id = c.id
		GROUP BY c.id, c.name, c.kind
		ORDER BY MIN(s.position) NULLS LAST, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying collections: %w", err)
	}
	defer rows.Close()

	var out []models.Collection
	for rows.Next() {
		var coll models.Collection
		var kind string
		if err := rows.Scan(&coll.ID, &coll.Name, &kind); err != nil {
			return nil, fmt.Errorf("error scanning collection: %w", err)
		}
		coll.Kind = models.CollectionKind(kind)
		out = append(out, coll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}
	return out, nil
}

// LoadItems returns skins in catalog order
func (db *Database) LoadItems(ctx context.Context) ([]models.Item, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, collection_id, rarity, variant, weapon_label, display_name,
		       category, image_ref, min_float, max_float
		FROM skins
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying skins: %w", err)
	}
	defer rows.Close()

	var out []models.Item
	for rows.Next() {
		var (
			item    models.Item
			rarity  int16
			variant string
		)
		err := rows.Scan(
			&item.ID, &item.CollectionID, &rarity, &variant, &item.WeaponLabel, &item.DisplayName,
			&item.Category, &item.ImageRef, &item.Wear.Min, &item.Wear.Max,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning skin: %w", err)
		}
		item.Rarity = models.Rarity(rarity)
		if item.Variant, err = models.ParseVariant(variant); err != nil {
			return nil, fmt.Errorf("skin %s: %w", item.ID, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skins: %w", err)
	}
	return out, nil
}

// LoadCatalog builds a catalog snapshot from the stored tables.
// It has the signature of a catalog.SourceFunc.
func (db *Database) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	collections, err := db.LoadCollections(ctx)
	if err != nil {
		return nil, err
	}
	items, err := db.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(items, collections)
}

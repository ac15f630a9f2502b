package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/uncharted-waters/tradedb/internal/geo"
	"github.com/uncharted-waters/tradedb/internal/model"
)

// SQLiteStore is a snapshot database opened with modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path. The snapshot is
// written once and never shared, so journaling is kept minimal.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=DELETE",
		"PRAGMA synchronous=FULL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, snapshotSchema)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for read queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// WriteDatabase inserts the whole document in one transaction.
func (s *SQLiteStore) WriteDatabase(ctx context.Context, tdb *model.TradeDatabase) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	steps := []struct {
		name string
		fn   func(context.Context, *sql.Tx, *model.TradeDatabase) error
	}{
		{"metadata", insertMetadata},
		{"regions", insertRegions},
		{"categories", insertCategories},
		{"cities", insertCities},
		{"items", insertItems},
	}
	for _, step := range steps {
		if err := step.fn(ctx, tx, tdb); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s", step.name)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

func insertMetadata(ctx context.Context, tx *sql.Tx, tdb *model.TradeDatabase) error {
	m := tdb.Metadata
	for _, kv := range [][2]string{
		{"id", m.ID},
		{"title", m.Title},
		{"description", m.Description},
		{"version", m.Version},
		{"created", m.Created},
		{"source_cities", m.Sources.Cities},
		{"source_prices", m.Sources.Prices},
	} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func insertRegions(ctx context.Context, tx *sql.Tx, tdb *model.TradeDatabase) error {
	for code, r := range tdb.Regions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO regions (code, name, display) VALUES (?, ?, ?)`,
			code, r.Name, r.Display,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, tdb *model.TradeDatabase) error {
	for i, c := range tdb.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (position, name) VALUES (?, ?)`, i, c); err != nil {
			return err
		}
	}
	return nil
}

func insertCities(ctx context.Context, tx *sql.Tx, tdb *model.TradeDatabase) error {
	for i, c := range tdb.Cities {
		wkb, err := geo.EncodeEWKB(c.Coordinates)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cities (position, name, culture, culture_name, lat, lng, display, geom, development, military, type, has_tavern, has_shipyard)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, c.Name, c.Culture, c.CultureName,
			c.Coordinates.Lat, c.Coordinates.Lng, c.Coordinates.Display, wkb,
			c.Development, c.Military, c.Type, c.HasTavern, c.HasShipyard,
		); err != nil {
			return eris.Wrapf(err, "city %s", c.Name)
		}
		for j, sp := range c.Specialties {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO city_specialties (city, position, specialty) VALUES (?, ?, ?)`,
				c.Name, j, sp,
			); err != nil {
				return eris.Wrapf(err, "city %s specialty %s", c.Name, sp)
			}
		}
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, tdb *model.TradeDatabase) error {
	for i, it := range tdb.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (position, name, category) VALUES (?, ?, ?)`,
			i, it.Name, it.Category,
		); err != nil {
			return eris.Wrapf(err, "item %s", it.Name)
		}
		for code, price := range it.Prices {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO prices (item, region, price) VALUES (?, ?, ?)`,
				i, code, price,
			); err != nil {
				return eris.Wrapf(err, "item %s price %s", it.Name, code)
			}
		}
	}
	return nil
}

// Counts returns the row count of each snapshot table.
func (s *SQLiteStore) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int)
	for _, table := range []string{"metadata", "regions", "categories", "cities", "city_specialties", "items", "prices"} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, eris.Wrapf(err, "sqlite: count %s", table)
		}
		out[table] = n
	}
	return out, nil
}

// CitiesByCulture returns city names for a region code in document order.
func (s *SQLiteStore) CitiesByCulture(ctx context.Context, code string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM cities WHERE culture = ? ORDER BY position`, strings.TrimSpace(code))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query cities by culture")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan city")
		}
		names = append(names, name)
	}
	return names, eris.Wrap(rows.Err(), "sqlite: iterate cities")
}

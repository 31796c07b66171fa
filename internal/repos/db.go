package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS products(
  product_id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS locations(
  location_id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);

-- Ledger (append-only; rows are only removed by catalog cascade deletes)
CREATE TABLE IF NOT EXISTS movements(
  movement_id TEXT PRIMARY KEY,
  timestamp TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(product_id),
  from_location TEXT REFERENCES locations(location_id),
  to_location TEXT REFERENCES locations(location_id),
  qty INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_movements_product ON movements(product_id);
CREATE INDEX IF NOT EXISTS idx_movements_from    ON movements(from_location);
CREATE INDEX IF NOT EXISTS idx_movements_to      ON movements(to_location);
`
	_, err := db.Exec(schema)
	return err
}

// modernc's sqlite driver reports constraint failures as plain strings.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

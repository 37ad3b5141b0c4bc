package storage

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite database, bootstraps the schema, and seeds a
// demo catalog when the listings table is empty
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Raw per-platform listings (engine input, written by the scrapers)
CREATE TABLE IF NOT EXISTS listings(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  platform TEXT NOT NULL,
  unit TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
CREATE INDEX IF NOT EXISTS idx_listings_platform ON listings(platform);

-- Canonical products (engine output, one per listing)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  enriched_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Per-platform price entries, exactly five per product
CREATE TABLE IF NOT EXISTS product_prices(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  platform TEXT NOT NULL,
  price NUMERIC NOT NULL,
  available INTEGER NOT NULL,
  delivery_time TEXT NOT NULL,
  ord INTEGER NOT NULL,
  PRIMARY KEY(product_id, platform)
);
CREATE INDEX IF NOT EXISTS idx_product_prices_product ON product_prices(product_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedIfEmpty loads a small demo catalog so a fresh checkout has
// something to enrich
func seedIfEmpty(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM listings`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		id, name, category, platform, unit string
		price                              float64
	}{
		{"bk-001", "Fresho! Banana 12 pcs", "Fruits", "blinkit", "12 pcs", 60},
		{"zp-001", "Organic Banana Pack 12 pcs", "Fruits", "zepto", "12 pcs", 58},
		{"im-001", "Banana Robusta 12 pcs", "Fruits", "instamart", "12 pcs", 62},
		{"bb-001", "Fresho Banana - Robusta, 12 pcs", "Fruits", "bigbasket", "12 pcs", 55},
		{"bk-002", "Amul Taaza Toned Milk 500 ml", "Dairy & Milk", "blinkit", "500 ml", 27},
		{"zp-002", "Amul Taaza Milk 500ml", "Dairy & Milk", "zepto", "500 ml", 27},
		{"jm-001", "Amul Taaza Toned Fresh Milk 500 ml", "Dairy & Milk", "jiomart", "500 ml", 26},
		{"bk-003", "Fresh Tomato 500 g", "Vegetables", "blinkit", "500 g", 22},
		{"bb-002", "Fresho Tomato Hybrid 500 g", "Vegetables", "bigbasket", "500 g", 19},
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	for _, l := range seed {
		if _, err := tx.Exec(
			`INSERT INTO listings(id, name, category, price, platform, unit) VALUES(?, ?, ?, ?, ?, ?)`,
			l.id, l.name, l.category, l.price, l.platform, l.unit,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

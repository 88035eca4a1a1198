// Package api is the development catalog/order backend behind the
// gateway contract: a SQLite-backed stand-in for the remote service so
// the storefront runs end-to-end on one machine.
package api

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

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

-- Catalog. price NULL marks an item that is displayed but not for sale.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  price NUMERIC CHECK (price IS NULL OR price >= 0),
  image TEXT NOT NULL,
  category TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  payment TEXT NOT NULL CHECK (payment IN ('online','cash')),
  address TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  total NUMERIC NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,title,description,price,image,category) VALUES
	  ('soft-001','+1 hour a day','Drink it and a spare hour appears in your day.',750,'/5_Dots.svg','soft-skill'),
	  ('hard-001','Backend anti-stress','Squeeze it to put off a release.',1000,'/Shell.svg','hard-skill'),
	  ('other-001','Framework gyroscope','Spins in the direction of the trendiest framework.',850,'/Polygon.svg','other'),
	  ('btn-001','Enter button','Press and whatever you typed actually works.',1450,'/Butt.svg','button'),
	  ('add-001','Second conscience','Keeps working while the first one rests.',2300,'/Leaf.svg','additional'),
	  ('soft-002','Focus grass','A pot of grass that absorbs notifications.',330,'/Grass.svg','soft-skill'),
	  ('other-002','Mealy thing','Nobody knows what it does, but parting with it is hard.',NULL,'/Pill.svg','other')`)
	return tx.Commit()
}

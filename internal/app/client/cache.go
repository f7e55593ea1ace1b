package client

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pricelist/internal/domain/price"
)

// SnapshotCache persists the last server-confirmed price list so the
// client has something to show between start and the first successful
// poll. It never stores unconfirmed local edits; those only live in
// memory.
type SnapshotCache struct {
	db *sql.DB
}

func NewSnapshotCache(path string) (*SnapshotCache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot cache: %w", err)
	}

	cache := &SnapshotCache{db: db}
	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing snapshot cache: %w", err)
	}

	return cache, nil
}

func (c *SnapshotCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS precos (
			id TEXT PRIMARY KEY,
			marca TEXT NOT NULL,
			codigo TEXT NOT NULL,
			preco REAL NOT NULL,
			descricao TEXT NOT NULL DEFAULT '',
			timestamp TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)

	return err
}

// Save replaces the whole snapshot atomically together with its
// fingerprint.
func (c *SnapshotCache) Save(prices []price.Price, fingerprint string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM precos"); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	for _, p := range prices {
		_, err := tx.Exec(`
			INSERT INTO precos (id, marca, codigo, preco, descricao, timestamp)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.Brand, p.Code, p.Value, p.Description, p.UpdatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("inserting snapshot row: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('fingerprint', ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, fingerprint)
	if err != nil {
		return fmt.Errorf("saving snapshot fingerprint: %w", err)
	}

	return tx.Commit()
}

// Load returns the cached snapshot and its fingerprint. An empty cache
// returns an empty slice and an empty fingerprint, not an error.
func (c *SnapshotCache) Load() ([]price.Price, string, error) {
	rows, err := c.db.Query(`
		SELECT id, marca, codigo, preco, descricao, timestamp
		FROM precos
		ORDER BY marca ASC
	`)
	if err != nil {
		return nil, "", fmt.Errorf("reading snapshot: %w", err)
	}
	defer rows.Close()

	var prices []price.Price
	for rows.Next() {
		var p price.Price
		var ts string
		if err := rows.Scan(&p.ID, &p.Brand, &p.Code, &p.Value, &p.Description, &ts); err != nil {
			return nil, "", fmt.Errorf("scanning snapshot row: %w", err)
		}
		p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("reading snapshot: %w", err)
	}

	var fingerprint string
	err = c.db.QueryRow("SELECT value FROM meta WHERE key = 'fingerprint'").Scan(&fingerprint)
	if err != nil && err != sql.ErrNoRows {
		return nil, "", fmt.Errorf("reading snapshot fingerprint: %w", err)
	}

	return prices, fingerprint, nil
}

func (c *SnapshotCache) Close() error {
	return c.db.Close()
}

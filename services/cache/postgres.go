package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"dwellscan/listingworker/internal/listing"
)

// PostgresStore implements Store using PostgreSQL. Unlike the volatile
// backends it survives restarts, which suits the never-expire cache model.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgresStore connects to PostgreSQL using the pgx driver
func OpenPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Migrate creates the records table if it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listing_records (
			address_key  TEXT PRIMARY KEY,
			address      TEXT NOT NULL,
			requested_by TEXT NOT NULL DEFAULT '',
			scraped_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			record       JSONB NOT NULL
		)
	`)
	return err
}

// Get retrieves the record stored for address, or ErrNotFound
func (s *PostgresStore) Get(ctx context.Context, address string) (*listing.Record, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM listing_records WHERE address_key = $1`,
		Key(address),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var record listing.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Put stores the record for address. ON CONFLICT DO NOTHING keeps an
// existing row so the first write wins.
func (s *PostgresStore) Put(ctx context.Context, address string, record *listing.Record, requestedBy string) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO listing_records (address_key, address, requested_by, record)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address_key) DO NOTHING
	`, Key(address), address, requestedBy, data)
	return err
}

// Ping checks connectivity to the database
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

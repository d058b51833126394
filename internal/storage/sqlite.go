package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps each character's record as a row in a SQLite database.
// The payload is the same JSON document FileStore writes.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	opts   options
}

// NewSQLiteStore opens (and creates if needed) the database at dbPath.
// Call Migrate before first use.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory: %v", common.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and :memory: needs
	// exactly one to keep its data.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		opts:   buildOptions(opts),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads a character's vendors. A missing row is an empty collection.
func (s *SQLiteStore) Load(ctx context.Context, characterID string) ([]*model.Vendor, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	key, err := storageKey(characterID)
	if err != nil {
		return nil, err
	}

	var payload string
	err = s.db.QueryRowContext(ctx, `
		SELECT payload FROM character_records WHERE character_id = ?
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []*model.Vendor{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load vendors: %v", common.ErrStorageUnavailable, err)
	}

	vendors, err := s.opts.decode([]byte(payload), characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record for %s: %w", key, err)
	}
	return vendors, nil
}

// Save replaces a character's record inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, characterID string, vendors []*model.Vendor) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVendors(vendors); err != nil {
		return err
	}
	key, err := storageKey(characterID)
	if err != nil {
		return err
	}

	payload, err := EncodeRecord(vendors)
	if err != nil {
		return err
	}

	err = common.WithRetry(ctx, func() error {
		return classifyBusy(s.upsert(ctx, key, string(payload), len(vendors)))
	}, s.opts.retry)
	if err != nil {
		return fmt.Errorf("%w: failed to save vendors: %w", common.ErrStorageUnavailable, err)
	}

	slog.Debug("Saved vendors", "character", characterID, "count", len(vendors), "database", s.dbPath)
	return nil
}

func (s *SQLiteStore) upsert(ctx context.Context, key, payload string, count int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO character_records (character_id, payload, vendor_count, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(character_id) DO UPDATE SET
			payload = excluded.payload,
			vendor_count = excluded.vendor_count,
			updated_at = excluded.updated_at
	`, key, payload, count, s.opts.clock.Now().UTC())
	if err != nil {
		return err
	}
	return tx.Commit()
}

// classifyBusy marks lock contention as worth retrying. Anything else is
// permanent.
func classifyBusy(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	return &common.RetryableError{Err: err}
}

// Exists reports whether the character has a stored row.
func (s *SQLiteStore) Exists(ctx context.Context, characterID string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	key, err := storageKey(characterID)
	if err != nil {
		return false, err
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM character_records WHERE character_id = ?)
	`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check character: %v", common.ErrStorageUnavailable, err)
	}
	return exists, nil
}

// ListCharacters returns every stored character id, sorted.
func (s *SQLiteStore) ListCharacters(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT character_id FROM character_records ORDER BY character_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query characters: %v", common.ErrStorageUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	characters := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", err)
	}
	return characters, nil
}

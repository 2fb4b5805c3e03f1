package bridgesdk

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nimbusott/access-bridge/pkg/bridgesdk/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a TokenStore backed by a local sqlite file, for clients
// that must keep their passport across restarts. The stored record is
// sealed with AES-256-GCM under a caller-supplied key, so tokens are never
// written to disk in the clear.
type SQLiteStore struct {
	db     *sql.DB
	sealer *sealer
}

// OpenSQLiteStore opens (creating if needed) the token store at path and
// applies any pending schema migrations. key seals records at rest; it may
// be any byte string and is hashed into an AES-256 key.
func OpenSQLiteStore(path string, key []byte) (*SQLiteStore, error) {
	sealer, err := newSealer(key)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure token store: %w", err)
		}
	}

	store := &SQLiteStore{db: db, sealer: sealer}
	if err := store.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate token store: %w", err)
	}

	return store, nil
}

// applyMigrations applies pending migrations from the embedded filesystem.
func (s *SQLiteStore) applyMigrations() error {
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", source, "", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*AccessTokens, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM access_tokens WHERE key = ?`, key,
	).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token record: %w", err)
	}

	plaintext, err := s.sealer.open(sealed)
	if err != nil {
		return nil, fmt.Errorf("unseal token record: %w", err)
	}

	var tokens AccessTokens
	if err := json.Unmarshal(plaintext, &tokens); err != nil {
		return nil, fmt.Errorf("decode token record: %w", err)
	}
	return &tokens, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, tokens *AccessTokens) error {
	plaintext, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encode token record: %w", err)
	}

	sealed, err := s.sealer.seal(plaintext)
	if err != nil {
		return fmt.Errorf("seal token record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO access_tokens (key, record, updated_at)
		 VALUES (?, ?, unixepoch())
		 ON CONFLICT(key) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		key, sealed,
	)
	if err != nil {
		return fmt.Errorf("write token record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM access_tokens WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete token record: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

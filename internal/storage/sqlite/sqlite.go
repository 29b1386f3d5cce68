// Package sqlite keeps the document in a SQLite file, one row per collection.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"condoadmin/internal/infrastructure/migration"
	"condoadmin/internal/storage"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func New(path string, log *slog.Logger) (*Store, error) {
	if err := migration.NewMigration("sqlite3://"+path, migration.SQLiteDir, nil).Up(); err != nil {
		return nil, storage.Unavailable("migrate sqlite", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, storage.Unavailable("open sqlite", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storage.Unavailable("ping sqlite", err)
	}

	return &Store{
		db:  db,
		log: log.With("component", "sqlite_store"),
	}, nil
}

func (s *Store) Read(ctx context.Context) (*storage.Document, error) {
	collections := make(map[string]json.RawMessage)
	rows, err := s.db.QueryContext(ctx, `SELECT name, items FROM collections`)
	if err != nil {
		s.log.Error("failed to query collections", "error", err)
		return nil, storage.Unavailable("query collections", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, items string
		if err := rows.Scan(&name, &items); err != nil {
			return nil, storage.Unavailable("scan collection", err)
		}
		collections[name] = json.RawMessage(items)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate collections", err)
	}

	extras, err := s.readExtras(ctx)
	if err != nil {
		return nil, err
	}
	sequences, err := s.readSequences(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := storage.Assemble(collections, extras, sequences)
	if err != nil {
		s.log.Error("stored collections are not valid JSON", "error", err)
		return nil, storage.Unavailable("decode collections", err)
	}
	return doc, nil
}

func (s *Store) readExtras(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM extras`)
	if err != nil {
		return nil, storage.Unavailable("query extras", err)
	}
	defer rows.Close()

	extras := make(map[string]json.RawMessage)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, storage.Unavailable("scan extra", err)
		}
		extras[name] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate extras", err)
	}
	return extras, nil
}

func (s *Store) readSequences(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM sequences`)
	if err != nil {
		return nil, storage.Unavailable("query sequences", err)
	}
	defer rows.Close()

	sequences := make(map[string]int64)
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, storage.Unavailable("scan sequence", err)
		}
		sequences[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate sequences", err)
	}
	return sequences, nil
}

// Write replaces every stored collection and counter inside one transaction.
func (s *Store) Write(ctx context.Context, doc *storage.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.replace(ctx, tx, doc); err != nil {
		s.log.Error("failed to write document", "error", err)
		return storage.Unavailable("write document", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Unavailable("commit transaction", err)
	}
	return nil
}

func (s *Store) replace(ctx context.Context, tx *sql.Tx, doc *storage.Document) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sequences`); err != nil {
		return fmt.Errorf("clear sequences: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM extras`); err != nil {
		return fmt.Errorf("clear extras: %w", err)
	}

	for _, name := range doc.Names() {
		items, err := json.Marshal(doc.Collection(name))
		if err != nil {
			return fmt.Errorf("encode collection %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO collections (name, items, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
			name, string(items)); err != nil {
			return fmt.Errorf("insert collection %s: %w", name, err)
		}
	}

	for name, value := range doc.Extras() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO extras (name, value) VALUES (?, ?)`, name, string(value)); err != nil {
			return fmt.Errorf("insert extra %s: %w", name, err)
		}
	}

	for name, value := range doc.Sequences() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sequences (name, value) VALUES (?, ?)`, name, value); err != nil {
			return fmt.Errorf("insert sequence %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

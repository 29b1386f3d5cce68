// Package postgres keeps the document in PostgreSQL, one jsonb row per collection.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"condoadmin/internal/infrastructure/migration"
	"condoadmin/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, storage.Unavailable("create pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, storage.Unavailable("ping postgres", err)
	}

	mg := migration.NewMigration(databaseURI, migration.PostgresDir, nil)
	if err := mg.Up(); err != nil {
		pool.Close()
		return nil, storage.Unavailable("migrate postgres", err)
	}

	return &Store{
		pool: pool,
		log:  log.With("component", "postgres_store"),
	}, nil
}

func (s *Store) Read(ctx context.Context) (*storage.Document, error) {
	collections := make(map[string]json.RawMessage)
	rows, err := s.pool.Query(ctx, `SELECT name, items FROM collections`)
	if err != nil {
		s.log.Error("failed to query collections", "error", err)
		return nil, storage.Unavailable("query collections", err)
	}
	for rows.Next() {
		var name string
		var items []byte
		if err := rows.Scan(&name, &items); err != nil {
			rows.Close()
			return nil, storage.Unavailable("scan collection", err)
		}
		collections[name] = items
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate collections", err)
	}

	sequences := make(map[string]int64)
	rows, err = s.pool.Query(ctx, `SELECT name, value FROM sequences`)
	if err != nil {
		return nil, storage.Unavailable("query sequences", err)
	}
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			rows.Close()
			return nil, storage.Unavailable("scan sequence", err)
		}
		sequences[name] = value
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate sequences", err)
	}

	extras := make(map[string]json.RawMessage)
	rows, err = s.pool.Query(ctx, `SELECT name, value FROM extras`)
	if err != nil {
		return nil, storage.Unavailable("query extras", err)
	}
	for rows.Next() {
		var name string
		var value []byte
		if err := rows.Scan(&name, &value); err != nil {
			rows.Close()
			return nil, storage.Unavailable("scan extra", err)
		}
		extras[name] = value
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("iterate extras", err)
	}

	doc, err := storage.Assemble(collections, extras, sequences)
	if err != nil {
		return nil, storage.Unavailable("decode collections", err)
	}
	return doc, nil
}

func (s *Store) Write(ctx context.Context, doc *storage.Document) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return replace(ctx, tx, doc)
	})
	if err != nil {
		s.log.Error("failed to write document", "error", err)
		return storage.Unavailable("write document", err)
	}
	return nil
}

func replace(ctx context.Context, tx pgx.Tx, doc *storage.Document) error {
	if _, err := tx.Exec(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("clear collections: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sequences`); err != nil {
		return fmt.Errorf("clear sequences: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM extras`); err != nil {
		return fmt.Errorf("clear extras: %w", err)
	}

	batch := &pgx.Batch{}
	for _, name := range doc.Names() {
		items, err := json.Marshal(doc.Collection(name))
		if err != nil {
			return fmt.Errorf("encode collection %s: %w", name, err)
		}
		batch.Queue(`INSERT INTO collections (name, items, updated_at) VALUES ($1, $2::jsonb, NOW())`, name, string(items))
	}
	for name, value := range doc.Extras() {
		batch.Queue(`INSERT INTO extras (name, value) VALUES ($1, $2::jsonb)`, name, string(value))
	}
	for name, value := range doc.Sequences() {
		batch.Queue(`INSERT INTO sequences (name, value) VALUES ($1, $2)`, name, value)
	}
	if batch.Len() == 0 {
		return nil
	}

	return tx.SendBatch(ctx, batch).Close()
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Package backend picks the Store implementation named in the configuration.
package backend

import (
	"context"
	"fmt"

	"condoadmin/internal/config"
	"condoadmin/internal/storage"
	"condoadmin/internal/storage/jsonfile"
	"condoadmin/internal/storage/memory"
	"condoadmin/internal/storage/postgres"
	"condoadmin/internal/storage/sqlite"

	"golang.org/x/exp/slog"
)

// New opens the configured store.
//
// Supported backends:
//
//	"json"     - single JSON document at cfg.Path (default)
//	"memory"   - in-process, lost on exit
//	"sqlite"   - SQLite database at cfg.Path
//	"postgres" - PostgreSQL at cfg.DatabaseURI
func New(ctx context.Context, cfg config.Store, log *slog.Logger) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		if cfg.Create {
			if err := jsonfile.Ensure(cfg.Path); err != nil {
				return nil, err
			}
		}
		return jsonfile.New(cfg.Path, log), nil
	case config.BackendMemory:
		return memory.New(nil)
	case config.BackendSQLite:
		return sqlite.New(cfg.Path, log)
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.DatabaseURI, log)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, memory, sqlite, postgres)", cfg.Backend)
	}
}

package backend

import (
	"context"
	"path/filepath"
	"testing"

	"condoadmin/internal/config"
	"condoadmin/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("json creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")
		s, err := New(ctx, config.Store{Backend: config.BackendJSON, Path: path, Create: true}, slog.Default())
		require.NoError(t, err)

		doc, err := s.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, doc.Names())
	})

	t.Run("json without create reports missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db.json")
		s, err := New(ctx, config.Store{Backend: config.BackendJSON, Path: path}, slog.Default())
		require.NoError(t, err)

		_, err = s.Read(ctx)
		assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
	})

	t.Run("memory", func(t *testing.T) {
		s, err := New(ctx, config.Store{Backend: config.BackendMemory}, slog.Default())
		require.NoError(t, err)
		assert.NoError(t, s.Close())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(ctx, config.Store{Backend: "redis"}, slog.Default())
		assert.ErrorContains(t, err, "unknown store backend")
	})
}

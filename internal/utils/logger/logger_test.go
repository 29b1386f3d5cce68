package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"condoadmin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestNewWithLevel(t *testing.T) {
	ctx := context.Background()

	// уровень из конфигурации перекрывает уровень окружения
	l := NewWithLevel(config.EnvDev, "warn")
	assert.False(t, l.Enabled(ctx, slog.LevelInfo))
	assert.True(t, l.Enabled(ctx, slog.LevelWarn))

	l = NewWithLevel(config.EnvProd, "DEBUG")
	assert.True(t, l.Enabled(ctx, slog.LevelDebug))

	// пустой уровень — как New
	l = NewWithLevel(config.EnvProd, "")
	assert.False(t, l.Enabled(ctx, slog.LevelDebug))
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	h := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}.NewPrettyHandler(&buf)
	log := slog.New(h).With("component", "test")

	log.Error("write failed", "error", errors.New("disk full"), "collection", "boletos")

	out := buf.String()
	assert.Contains(t, out, "write failed")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"error": "disk full"`)
	assert.Contains(t, out, `"collection": "boletos"`)
}

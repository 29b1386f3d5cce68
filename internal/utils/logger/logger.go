package logger

import (
	"os"
	"strings"

	"condoadmin/internal/config"

	"golang.org/x/exp/slog"
)

// New returns the logger for env: pretty text locally, JSON elsewhere.
// Prod logs from INFO, local and dev from DEBUG.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return setupPrettySlog()
	}
}

// NewWithLevel is New with an explicit minimum level. An empty or unknown
// level keeps the env default.
func NewWithLevel(env, level string) *slog.Logger {
	lvl, ok := parseLevel(level)
	if !ok {
		return New(env)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if env == config.EnvDev || env == config.EnvProd {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(PrettyHandlerOptions{SlogOpts: opts}.NewPrettyHandler(os.Stdout))
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func setupPrettySlog() *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
	}
	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"condoadmin/internal/app/server"
	"condoadmin/internal/config"
	"condoadmin/internal/utils/logger"

	"golang.org/x/exp/slog"
)

func main() {
	conf := config.MustLoad()
	log := logger.NewWithLevel(conf.Env, conf.Logger.LogLevel)

	if err := run(conf, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(conf *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, conf, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}

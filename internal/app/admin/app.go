// Package admin runs condoctl commands either directly against the
// configured store or against a running server.
package admin

import (
	"context"
	"errors"
	"fmt"

	"condoadmin/internal/app/client"
	"condoadmin/internal/app/server"
	"condoadmin/internal/config"
	"condoadmin/internal/domain/collection"
	"condoadmin/internal/domain/user"
	"condoadmin/internal/storage"
	"condoadmin/internal/storage/backend"

	"golang.org/x/exp/slog"
)

var (
	ErrNoApp     = errors.New("приложение не инициализировано")
	ErrNotRemote = errors.New("команда доступна только с --server")
)

type App struct {
	Records collection.Servicer
	Users   user.Servicer
	Printer *Printer
	// Remote is set when the app talks to a server instead of the store.
	Remote *client.Remote

	close func() error
	log   *slog.Logger
}

// NewLocal opens the configured store in-process.
func NewLocal(ctx context.Context, cfg *config.Config, printer *Printer, log *slog.Logger) (*App, error) {
	store, err := backend.New(ctx, cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	domain, err := server.NewDomain(storage.NewGuard(store), cfg.Auth, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Records: domain.Collections,
		Users:   domain.Users,
		Printer: printer,
		close:   store.Close,
		log:     log,
	}, nil
}

// NewRemote points the app at a running server. With connect set the
// collection definitions are fetched right away, which needs a valid token.
func NewRemote(ctx context.Context, serverURL, token string, connect bool, printer *Printer, log *slog.Logger) (*App, error) {
	remote := client.NewRemote(client.New(serverURL, log))
	remote.SetToken(token)

	if connect {
		if err := remote.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return &App{
		Records: remote,
		Users:   remote,
		Printer: printer,
		Remote:  remote,
		close:   func() error { return nil },
		log:     log,
	}, nil
}

func (a *App) Close() error {
	return a.close()
}

type appKey struct{}

func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

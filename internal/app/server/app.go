package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"condoadmin/internal/app/server/api"
	"condoadmin/internal/config"
	"condoadmin/internal/domain/collection"
	"condoadmin/internal/domain/session"
	"condoadmin/internal/domain/user"
	"condoadmin/internal/storage"
	"condoadmin/internal/storage/backend"

	"golang.org/x/exp/slog"
)

// Domain holds the services built on top of one guarded store.
type Domain struct {
	Collections *collection.Service
	Users       *user.Service
	Sessions    *session.Service
}

// NewDomain wires the collection, user and session services. The users
// collection gets the password hashing hook.
func NewDomain(guard *storage.Guard, auth config.Auth, log *slog.Logger) (*Domain, error) {
	sessions, err := session.NewService(auth.Secret, auth.TokenTTL, log)
	if err != nil {
		return nil, fmt.Errorf("session service: %w", err)
	}

	var users *user.Service
	defs := collection.WithPrepare(collection.DefaultDefinitions(), collection.Usuarios, func(fields storage.Record) error {
		return users.PreparePassword(fields)
	})
	records := collection.NewService(guard, defs, log)
	users = user.NewService(user.NewRepo(records), user.NewPasswordValidator(), log)

	return &Domain{
		Collections: records,
		Users:       users,
		Sessions:    sessions,
	}, nil
}

type App struct {
	cfg    *config.Config
	log    *slog.Logger
	store  storage.Store
	Domain *Domain
	server *http.Server
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := backend.New(ctx, cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	guard := storage.NewGuard(store)

	domain, err := NewDomain(guard, cfg.Auth, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	mux := api.New(api.Services{
		Collections: domain.Collections,
		Users:       domain.Users,
		Sessions:    domain.Sessions,
		Health: func(ctx context.Context) error {
			return guard.View(ctx, func(*storage.Document) error { return nil })
		},
	}, log)

	return &App{
		cfg:    cfg,
		log:    log.With("component", "server"),
		store:  store,
		Domain: domain,
		server: &http.Server{
			Addr:         cfg.Server.RunAddress,
			Handler:      mux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "address", a.server.Addr, "backend", a.cfg.Store.Backend)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down", "timeout", a.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	return a.store.Close()
}

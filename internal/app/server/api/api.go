// GET    /api/v1/health              # состояние сервиса (публичный)
// POST   /api/v1/auth/login          # логин (публичный)
// GET    /api/v1/collections         # описание коллекций (auth)
// GET    /api/v1/{collection}        # список с фильтром и пагинацией (auth)
// GET    /api/v1/{collection}/{id}   # получить запись (auth)
// POST   /api/v1/{collection}        # создать запись (auth)
// PUT    /api/v1/{collection}/{id}   # обновить запись (auth)
// DELETE /api/v1/{collection}/{id}   # удалить запись (auth)

package api

import (
	collectionAPI "condoadmin/internal/app/server/api/http/collection"
	healthAPI "condoadmin/internal/app/server/api/http/health"
	"condoadmin/internal/app/server/api/http/middleware"
	"condoadmin/internal/app/server/api/http/middleware/auth"
	"condoadmin/internal/app/server/api/http/middleware/logger"
	userAPI "condoadmin/internal/app/server/api/http/user"
	"condoadmin/internal/domain/collection"
	"condoadmin/internal/domain/session"
	"condoadmin/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// Services are the domain dependencies of the HTTP API.
type Services struct {
	Collections collection.Servicer
	Users       user.Servicer
	Sessions    session.Servicer
	Health      healthAPI.Checker
}

type Handlers struct {
	Health      *healthAPI.Handler
	User        *userAPI.Handler
	Collections *collectionAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(svc Services, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	Register(mux, svc, log)
	return mux
}

// Register mounts every operation on router.
func Register(router chi.Router, svc Services, log *slog.Logger) huma.API {
	config := huma.DefaultConfig("Condo Admin API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	API := humachi.New(router, config)

	h := handlers(svc, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Collections.SetupRoutes(API)

	return API
}

func handlers(svc Services, log *slog.Logger) *Handlers {
	authMW := auth.New(svc.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(svc.Health, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(svc.Users, svc.Sessions, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	collectionHandler := collectionAPI.NewHandler(svc.Collections, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:      healthHandler,
		User:        userHandler,
		Collections: collectionHandler,
	}
}

package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Checker reports whether the backing store is readable.
type Checker func(ctx context.Context) error

type Handler struct {
	check      Checker
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(check Checker, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		check:      check,
		log:        log.With("component", "health_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	if h.check != nil {
		if err := h.check(ctx); err != nil {
			h.log.Error("store is not readable", "error", err)
			return nil, huma.Error503ServiceUnavailable("store unavailable")
		}
	}

	return &Output{
		Body: Response{
			Status: "OK",
			Store:  "OK",
		},
	}, nil
}

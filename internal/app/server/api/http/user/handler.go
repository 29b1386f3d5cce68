package user

import (
	"context"
	"errors"

	"condoadmin/internal/domain/session"
	"condoadmin/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log.With("component", "auth_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if errors.Is(err, user.ErrInvalidAuth) {
		h.log.Info("login rejected", "email", input.Body.Email)
		return nil, huma.Error401Unauthorized("invalid credentials")
	}
	if err != nil {
		h.log.Error("login failed", "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	token, err := h.session.Create(ctx, u.ID, u.Email)
	if err != nil {
		h.log.Error("create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("internal server error")
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:     token.Value,
			ExpiresAt: token.ExpiresAt,
			User: Profile{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				ProfileID: u.ProfileID,
			},
		},
	}, nil
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"condoadmin/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const bearerPrefix = "Bearer "

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const (
	UserIDKey contextKey = "userID"
	EmailKey  contextKey = "email"
)

// Middleware пропускает запрос дальше только с валидным Bearer токеном
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx, "missing bearer token")
			return
		}

		claims, err := a.session.Validate(ctx.Context(), strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			a.log.Debug("token rejected", "path", ctx.URL().Path, "error", err)
			a.unauthorized(ctx, "invalid or expired token")
			return
		}

		newCtx := context.WithValue(ctx.Context(), UserIDKey, claims.UserID)
		newCtx = context.WithValue(newCtx, EmailKey, claims.Email)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context, detail string) {
	ctx.SetHeader("Content-Type", "application/problem+json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(&huma.ErrorModel{
		Title:  http.StatusText(http.StatusUnauthorized),
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
	if err != nil {
		a.log.Error("failed to encode response", "error", err)
	}
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

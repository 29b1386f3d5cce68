package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Авторизация пользователя",
		Description: "Exchanges email and password for a bearer token",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusUnauthorized},
		Middlewares: h.middleware,
	}
}

package collection

import (
	"net/http"

	"condoadmin/internal/domain/collection"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func basePath(def collection.Definition) string {
	return "/api/v1/" + def.Name
}

func (h *Handler) definitionsOp() huma.Operation {
	return huma.Operation{
		OperationID: "collections-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "Список коллекций",
		Tags:        []string{"collections"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp(def collection.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-list",
		Method:      http.MethodGet,
		Path:        basePath(def),
		Summary:     def.Title + ": список с фильтром и пагинацией",
		Tags:        []string{def.Name},
		Security:    bearer,
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp(def collection.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-get",
		Method:      http.MethodGet,
		Path:        basePath(def) + "/{id}",
		Summary:     def.Title + ": получить запись",
		Tags:        []string{def.Name},
		Security:    bearer,
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp(def collection.Definition) huma.Operation {
	return huma.Operation{
		OperationID:   def.Name + "-create",
		Method:        http.MethodPost,
		Path:          basePath(def),
		Summary:       def.Title + ": создать запись",
		Tags:          []string{def.Name},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnauthorized, http.StatusUnprocessableEntity},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp(def collection.Definition) huma.Operation {
	return huma.Operation{
		OperationID: def.Name + "-update",
		Method:      http.MethodPut,
		Path:        basePath(def) + "/{id}",
		Summary:     def.Title + ": обновить запись",
		Description: "Only the supplied fields change; the id is immutable.",
		Tags:        []string{def.Name},
		Security:    bearer,
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp(def collection.Definition) huma.Operation {
	return huma.Operation{
		OperationID:   def.Name + "-delete",
		Method:        http.MethodDelete,
		Path:          basePath(def) + "/{id}",
		Summary:       def.Title + ": удалить запись",
		Tags:          []string{def.Name},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound},
		Middlewares:   h.middleware,
	}
}

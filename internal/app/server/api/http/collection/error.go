package collection

import (
	"errors"

	"condoadmin/internal/domain/collection"

	"github.com/danielgtaylor/huma/v2"
)

// httpError maps service errors to problem responses. Anything unexpected,
// storage failures included, becomes a generic 500 and is only logged.
func (h *Handler) httpError(err error) error {
	var verr *collection.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, &huma.ErrorDetail{
				Message:  f.Message,
				Location: "body." + f.Field,
			})
		}
		return huma.Error422UnprocessableEntity(verr.Error(), details...)
	case errors.Is(err, collection.ErrNotFound), errors.Is(err, collection.ErrUnknownCollection):
		return huma.Error404NotFound(err.Error())
	default:
		h.log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal server error")
	}
}

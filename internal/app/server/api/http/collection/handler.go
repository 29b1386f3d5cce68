package collection

import (
	"context"

	"condoadmin/internal/domain/collection"
	"condoadmin/internal/storage"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Handler exposes every registered collection under /api/v1/{name}.
type Handler struct {
	service    collection.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service collection.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "collection_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.definitionsOp(), h.definitions)

	for _, def := range h.service.Definitions() {
		huma.Register(api, h.listOp(def), h.list(def))
		huma.Register(api, h.getOp(def), h.get(def))
		huma.Register(api, h.createOp(def), h.create(def))
		huma.Register(api, h.updateOp(def), h.update(def))
		huma.Register(api, h.deleteOp(def), h.delete(def))
	}
}

func (h *Handler) definitions(_ context.Context, _ *struct{}) (*definitionsOutput, error) {
	defs := h.service.Definitions()
	out := make([]definitionResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, definitionResponse{
			Name:         def.Name,
			Title:        def.Title,
			SearchFields: nonNil(def.SearchFields),
			ExactFields:  nonNil(def.ExactFields),
			Rules:        def.Rules,
		})
	}
	return &definitionsOutput{Body: out}, nil
}

func (h *Handler) list(def collection.Definition) func(context.Context, *listInput) (*listOutput, error) {
	return func(ctx context.Context, input *listInput) (*listOutput, error) {
		page, err := h.service.List(ctx, def.Name, collection.Query{
			Search:   input.Search,
			Filters:  input.filters(),
			Page:     input.Page,
			PageSize: input.pageSize(),
		})
		if err != nil {
			return nil, h.httpError(err)
		}

		items := make([]storage.Record, 0, len(page.Items))
		for _, rec := range page.Items {
			items = append(items, def.Visible(rec))
		}

		return &listOutput{
			Body: pageResponse{
				Items:      items,
				Total:      page.Total,
				Page:       page.Page,
				PageSize:   page.PageSize,
				TotalPages: page.TotalPages,
			},
		}, nil
	}
}

func (h *Handler) get(def collection.Definition) func(context.Context, *idInput) (*recordOutput, error) {
	return func(ctx context.Context, input *idInput) (*recordOutput, error) {
		rec, err := h.service.Get(ctx, def.Name, input.ID)
		if err != nil {
			return nil, h.httpError(err)
		}
		return &recordOutput{Body: def.Visible(rec)}, nil
	}
}

func (h *Handler) create(def collection.Definition) func(context.Context, *createInput) (*recordOutput, error) {
	return func(ctx context.Context, input *createInput) (*recordOutput, error) {
		rec, err := h.service.Create(ctx, def.Name, input.Body)
		if err != nil {
			return nil, h.httpError(err)
		}
		return &recordOutput{Body: def.Visible(rec)}, nil
	}
}

func (h *Handler) update(def collection.Definition) func(context.Context, *updateInput) (*recordOutput, error) {
	return func(ctx context.Context, input *updateInput) (*recordOutput, error) {
		rec, err := h.service.Update(ctx, def.Name, input.ID, input.Body)
		if err != nil {
			return nil, h.httpError(err)
		}
		return &recordOutput{Body: def.Visible(rec)}, nil
	}
}

func (h *Handler) delete(def collection.Definition) func(context.Context, *idInput) (*struct{}, error) {
	return func(ctx context.Context, input *idInput) (*struct{}, error) {
		if err := h.service.Delete(ctx, def.Name, input.ID); err != nil {
			return nil, h.httpError(err)
		}
		return nil, nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

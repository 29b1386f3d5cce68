package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"condoadmin/internal/storage"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Definitions() []Definition
	Definition(name string) (Definition, error)
	List(ctx context.Context, name string, q Query) (Page, error)
	Get(ctx context.Context, name, id string) (storage.Record, error)
	Create(ctx context.Context, name string, fields storage.Record) (storage.Record, error)
	Update(ctx context.Context, name, id string, fields storage.Record) (storage.Record, error)
	Delete(ctx context.Context, name, id string) error
}

type Service struct {
	store    *storage.Guard
	defs     map[string]Definition
	order    []string
	validate *validator.Validate
	log      *slog.Logger
}

func NewService(store *storage.Guard, defs []Definition, log *slog.Logger) *Service {
	s := &Service{
		store:    store,
		defs:     make(map[string]Definition, len(defs)),
		validate: newValidate(),
		log:      log.With("component", "collection_service"),
	}
	for _, def := range defs {
		if _, dup := s.defs[def.Name]; !dup {
			s.order = append(s.order, def.Name)
		}
		s.defs[def.Name] = def
	}
	return s
}

// Definitions returns the registered collections in registration order.
func (s *Service) Definitions() []Definition {
	out := make([]Definition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.defs[name])
	}
	return out
}

func (s *Service) Definition(name string) (Definition, error) {
	def, ok := s.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return def, nil
}

func (s *Service) List(ctx context.Context, name string, q Query) (Page, error) {
	def, err := s.Definition(name)
	if err != nil {
		return Page{}, err
	}

	var page Page
	err = s.store.View(ctx, func(doc *storage.Document) error {
		filtered := make([]storage.Record, 0)
		for _, rec := range doc.Collection(name) {
			if def.matches(rec, q.Search, q.Filters) {
				filtered = append(filtered, rec)
			}
		}

		total := len(filtered)
		p, size, start, end := window(q.Page, q.PageSize, total)

		items := make([]storage.Record, 0, end-start)
		for _, rec := range filtered[start:end] {
			items = append(items, rec.Clone())
		}
		if name == Usuarios {
			attachProfileDescriptions(items, doc.Collection(Perfil))
		}

		page = Page{
			Items:      items,
			Total:      total,
			Page:       p,
			PageSize:   size,
			TotalPages: totalPages(total, size),
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to list records", "collection", name, "error", err)
		return Page{}, fmt.Errorf("list %s: %w", name, err)
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, name, id string) (storage.Record, error) {
	if _, err := s.Definition(name); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)

	var found storage.Record
	err := s.store.View(ctx, func(doc *storage.Document) error {
		items := doc.Collection(name)
		idx := indexOf(items, id)
		if idx < 0 {
			return ErrNotFound
		}
		found = items[idx].Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail("get", name, id, err)
	}
	return found, nil
}

// Create validates fields, assigns the next id and appends the record.
// A caller-supplied id is discarded.
func (s *Service) Create(ctx context.Context, name string, fields storage.Record) (storage.Record, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	rec := fields.Clone()
	if rec == nil {
		rec = storage.Record{}
	}
	delete(rec, "id")

	if err := s.check(def, rec, false); err != nil {
		return nil, err
	}
	if def.Prepare != nil {
		if err := def.Prepare(rec); err != nil {
			return nil, fmt.Errorf("prepare %s: %w", name, err)
		}
	}

	var created storage.Record
	err = s.store.Update(ctx, func(doc *storage.Document) error {
		if err := def.checkUnique(doc.Collection(name), rec, -1); err != nil {
			return err
		}
		rec["id"] = doc.NextID(name)
		doc.SetCollection(name, append(doc.Collection(name), rec))
		created = rec.Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail("create", name, "", err)
	}

	s.log.Info("record created", "collection", name, "id", created.ID())
	return created, nil
}

// Update merges fields into the record with id; fields that are not supplied keep their values.
func (s *Service) Update(ctx context.Context, name, id string, fields storage.Record) (storage.Record, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)

	patch := fields.Clone()
	delete(patch, "id")

	if err := s.check(def, patch, true); err != nil {
		return nil, err
	}
	if def.Prepare != nil && len(patch) > 0 {
		if err := def.Prepare(patch); err != nil {
			return nil, fmt.Errorf("prepare %s: %w", name, err)
		}
	}

	var updated storage.Record
	err = s.store.Update(ctx, func(doc *storage.Document) error {
		items := doc.Collection(name)
		idx := indexOf(items, id)
		if idx < 0 {
			return ErrNotFound
		}
		if err := def.checkUnique(items, patch, idx); err != nil {
			return err
		}
		for k, v := range patch {
			items[idx][k] = v
		}
		updated = items[idx].Clone()
		return nil
	})
	if err != nil {
		return nil, s.fail("update", name, id, err)
	}

	s.log.Info("record updated", "collection", name, "id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, name, id string) error {
	if _, err := s.Definition(name); err != nil {
		return err
	}
	id = strings.TrimSpace(id)

	err := s.store.Update(ctx, func(doc *storage.Document) error {
		items := doc.Collection(name)
		idx := indexOf(items, id)
		if idx < 0 {
			return ErrNotFound
		}
		doc.SetCollection(name, slices.Delete(items, idx, idx+1))
		return nil
	})
	if err != nil {
		return s.fail("delete", name, id, err)
	}

	s.log.Info("record deleted", "collection", name, "id", id)
	return nil
}

// fail wraps err with the operation; not-found results are expected and are not logged as errors.
func (s *Service) fail(op, name, id string, err error) error {
	if errors.Is(err, ErrValidation) {
		s.log.Debug("record rejected", "op", op, "collection", name, "id", id, "error", err)
		return err
	}
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("record not found", "op", op, "collection", name, "id", id)
		return fmt.Errorf("%s %s %q: %w", op, name, id, err)
	}
	s.log.Error("collection operation failed", "op", op, "collection", name, "id", id, "error", err)
	return fmt.Errorf("%s %s: %w", op, name, err)
}

// checkUnique runs inside the store update so two writers cannot both pass it.
// skip is the index of the record being updated, -1 on create.
func (d Definition) checkUnique(items []storage.Record, fields storage.Record, skip int) error {
	for _, field := range d.Unique {
		want, ok := fields[field].(string)
		if !ok || want == "" {
			continue
		}
		for i, rec := range items {
			if i == skip {
				continue
			}
			if got, ok := rec[field].(string); ok && strings.EqualFold(got, want) {
				return NewValidationError(field, "unique", "is already taken")
			}
		}
	}
	return nil
}

func indexOf(items []storage.Record, id string) int {
	if id == "" {
		return -1
	}
	for i, rec := range items {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

package user

import (
	"context"
	"fmt"
	"strings"

	"condoadmin/internal/domain/collection"
	"condoadmin/internal/storage"
)

const lookupPageSize = 100

type Repository interface {
	Create(ctx context.Context, in Registration) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// NewRepo stores users as records of the "usuarios" collection.
func NewRepo(records collection.Servicer) Repository {
	return &repository{records: records}
}

type repository struct {
	records collection.Servicer
}

func (r *repository) Create(ctx context.Context, in Registration) (User, error) {
	fields := storage.Record{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}
	if in.ProfileID != "" {
		fields["profileId"] = in.ProfileID
	}

	rec, err := r.records.Create(ctx, collection.Usuarios, fields)
	if err != nil {
		return User{}, err
	}
	return FromRecord(rec), nil
}

// FindByEmail compares addresses case-insensitively.
func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	q := collection.Query{Search: email, Page: 1, PageSize: lookupPageSize}
	for {
		page, err := r.records.List(ctx, collection.Usuarios, q)
		if err != nil {
			return User{}, fmt.Errorf("find user: %w", err)
		}
		for _, rec := range page.Items {
			if addr, ok := rec["email"].(string); ok && strings.EqualFold(addr, email) {
				return FromRecord(rec), nil
			}
		}
		if q.Page >= page.TotalPages {
			return User{}, ErrNotFound
		}
		q.Page++
	}
}

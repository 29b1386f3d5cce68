package collection

import "condoadmin/internal/storage"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PrepareFunc rewrites incoming fields before they are stored,
// after validation has passed. It runs on create and update.
type PrepareFunc func(fields storage.Record) error

// Definition describes how one collection is searched and validated.
type Definition struct {
	Name  string
	Title string
	// SearchFields are matched case-insensitively against Query.Search; any one may match.
	SearchFields []string
	// ExactFields are the filters a Query may set; every supplied one must match.
	ExactFields []string
	// Rules are go-playground/validator tags keyed by field.
	Rules map[string]string
	// Hidden fields are stored but never rendered to clients.
	Hidden []string
	// Unique string fields may not repeat within the collection, compared case-insensitively.
	Unique  []string
	Prepare PrepareFunc
}

func (d Definition) hasExact(field string) bool {
	for _, f := range d.ExactFields {
		if f == field {
			return true
		}
	}
	return false
}

// Query selects and pages a collection.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Page is the single paginated response shape for every collection.
type Page struct {
	Items      []storage.Record `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// Visible returns a copy of rec without the hidden fields.
func (d Definition) Visible(rec storage.Record) storage.Record {
	out := rec.Clone()
	for _, field := range d.Hidden {
		delete(out, field)
	}
	return out
}

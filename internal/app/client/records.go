package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"condoadmin/internal/domain/collection"
	"condoadmin/internal/domain/user"
	"condoadmin/internal/storage"
)

// Remote implements collection.Servicer and user.Servicer over HTTP.
// Definitions are fetched once by Connect.
type Remote struct {
	*Client
	defs []collection.Definition
}

func NewRemote(c *Client) *Remote {
	return &Remote{Client: c}
}

type definitionBody struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	SearchFields []string          `json:"searchFields"`
	ExactFields  []string          `json:"exactFields"`
	Rules        map[string]string `json:"rules"`
}

// Connect loads the collection definitions the server exposes.
func (r *Remote) Connect(ctx context.Context) error {
	var body []definitionBody
	if err := r.do(ctx, http.MethodGet, "/api/v1/collections", nil, nil, &body); err != nil {
		return fmt.Errorf("load collections: %w", err)
	}

	r.defs = make([]collection.Definition, 0, len(body))
	for _, d := range body {
		r.defs = append(r.defs, collection.Definition{
			Name:         d.Name,
			Title:        d.Title,
			SearchFields: d.SearchFields,
			ExactFields:  d.ExactFields,
			Rules:        d.Rules,
		})
	}
	return nil
}

func (r *Remote) Definitions() []collection.Definition {
	return r.defs
}

func (r *Remote) Definition(name string) (collection.Definition, error) {
	for _, d := range r.defs {
		if d.Name == name {
			return d, nil
		}
	}
	return collection.Definition{}, fmt.Errorf("%w: %q", collection.ErrUnknownCollection, name)
}

func (r *Remote) List(ctx context.Context, name string, q collection.Query) (collection.Page, error) {
	if _, err := r.Definition(name); err != nil {
		return collection.Page{}, err
	}

	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for k, v := range q.Filters {
		if v != "" {
			values.Set(k, v)
		}
	}

	var page collection.Page
	if err := r.do(ctx, http.MethodGet, "/api/v1/"+name, values, nil, &page); err != nil {
		return collection.Page{}, err
	}
	return page, nil
}

func (r *Remote) Get(ctx context.Context, name, id string) (storage.Record, error) {
	var rec storage.Record
	if err := r.do(ctx, http.MethodGet, recordPath(name, id), nil, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Remote) Create(ctx context.Context, name string, fields storage.Record) (storage.Record, error) {
	var rec storage.Record
	if err := r.do(ctx, http.MethodPost, "/api/v1/"+url.PathEscape(name), nil, fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Remote) Update(ctx context.Context, name, id string, fields storage.Record) (storage.Record, error) {
	var rec storage.Record
	if err := r.do(ctx, http.MethodPut, recordPath(name, id), nil, fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Remote) Delete(ctx context.Context, name, id string) error {
	return r.do(ctx, http.MethodDelete, recordPath(name, id), nil, nil, nil)
}

// Authenticate exchanges credentials for a token and keeps it for later calls.
func (r *Remote) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	var body struct {
		Token string `json:"token"`
		User  struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			ProfileID string `json:"profileId"`
		} `json:"user"`
	}
	creds := map[string]string{"email": email, "password": password}
	if err := r.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, creds, &body); err != nil {
		return user.User{}, err
	}

	r.SetToken(body.Token)
	return user.User{
		ID:        body.User.ID,
		Name:      body.User.Name,
		Email:     body.User.Email,
		ProfileID: body.User.ProfileID,
	}, nil
}

// Register creates the user through the "usuarios" collection; the server hashes the password.
func (r *Remote) Register(ctx context.Context, in user.Registration) (user.User, error) {
	fields := storage.Record{"name": in.Name, "email": in.Email, "password": in.Password}
	if in.ProfileID != "" {
		fields["profileId"] = in.ProfileID
	}
	rec, err := r.Create(ctx, collection.Usuarios, fields)
	if err != nil {
		return user.User{}, err
	}
	return user.FromRecord(rec), nil
}

func recordPath(name, id string) string {
	return "/api/v1/" + url.PathEscape(name) + "/" + url.PathEscape(id)
}

// decodeError turns a problem response back into the domain error it came from.
func decodeError(status int, data []byte) error {
	var p problem
	_ = json.Unmarshal(data, &p)

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", p.Detail, collection.ErrNotFound)
	case http.StatusUnprocessableEntity:
		verr := &collection.ValidationError{}
		for _, e := range p.Errors {
			field, ok := strings.CutPrefix(e.Location, "body.")
			if !ok {
				continue
			}
			verr.Fields = append(verr.Fields, collection.FieldError{Field: field, Message: e.Message})
		}
		if len(verr.Fields) == 0 {
			return statusError(status, p.Detail)
		}
		return verr
	default:
		return statusError(status, p.Detail)
	}
}

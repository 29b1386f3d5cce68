package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"condoadmin/internal/app/server"
	"condoadmin/internal/app/server/api"
	"condoadmin/internal/config"
	"condoadmin/internal/domain/collection"
	"condoadmin/internal/domain/user"
	"condoadmin/internal/storage"
	"condoadmin/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const (
	email    = "sindico@condo.com"
	password = "P@ssw0rd123!"
)

func newRemote(t *testing.T) *Remote {
	t.Helper()
	log := slog.Default()

	guard := storage.NewGuard(memory.NewFromJSON([]byte(`{"perfil":[{"id":1,"description":"Administrador"}]}`)))
	domain, err := server.NewDomain(guard, config.Auth{Secret: "test-secret", TokenTTL: time.Hour}, log)
	require.NoError(t, err)

	_, err = domain.Users.Register(context.Background(), user.Registration{
		Name: "Síndico", Email: email, Password: password, ProfileID: "1",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(api.New(api.Services{
		Collections: domain.Collections,
		Users:       domain.Users,
		Sessions:    domain.Sessions,
	}, log))
	t.Cleanup(srv.Close)

	return NewRemote(New(srv.URL, log))
}

func TestRemote_Unauthorized(t *testing.T) {
	r := newRemote(t)
	ctx := context.Background()

	require.NoError(t, r.HealthCheck(ctx))

	err := r.Connect(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = r.Authenticate(ctx, email, "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, r.Token())
}

func TestRemote_CRUD(t *testing.T) {
	r := newRemote(t)
	ctx := context.Background()

	u, err := r.Authenticate(ctx, email, password)
	require.NoError(t, err)
	assert.Equal(t, email, u.Email)
	assert.NotEmpty(t, r.Token())

	require.NoError(t, r.Connect(ctx))
	def, err := r.Definition(collection.Boletos)
	require.NoError(t, err)
	assert.Contains(t, def.ExactFields, "unidadeId")

	_, err = r.Definition("reservas")
	assert.ErrorIs(t, err, collection.ErrUnknownCollection)

	created, err := r.Create(ctx, collection.Boletos, storage.Record{
		"unidadeId": "101", "valor": 350.5, "vencimento": "2024-03-10", "status": "Pendente", "mes": "03", "ano": "2024",
	})
	require.NoError(t, err)
	id := created.ID()
	require.NotEmpty(t, id)

	page, err := r.List(ctx, collection.Boletos, collection.Query{Search: "pend", Filters: map[string]string{"mes": "03"}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, collection.DefaultPageSize, page.PageSize)

	updated, err := r.Update(ctx, collection.Boletos, id, storage.Record{"status": "Pago"})
	require.NoError(t, err)
	assert.Equal(t, "Pago", updated["status"])
	assert.Equal(t, "101", updated["unidadeId"])

	require.NoError(t, r.Delete(ctx, collection.Boletos, id))
	_, err = r.Get(ctx, collection.Boletos, id)
	assert.ErrorIs(t, err, collection.ErrNotFound)
}

func TestRemote_ValidationError(t *testing.T) {
	r := newRemote(t)
	ctx := context.Background()

	_, err := r.Authenticate(ctx, email, password)
	require.NoError(t, err)
	require.NoError(t, r.Connect(ctx))

	_, err = r.Create(ctx, collection.Boletos, storage.Record{"unidadeId": "101", "valor": -1, "vencimento": "2024-03-10", "status": "Pago"})
	require.ErrorIs(t, err, collection.ErrValidation)

	var verr *collection.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "valor", verr.Fields[0].Field)
}

func TestRemote_Register(t *testing.T) {
	r := newRemote(t)
	ctx := context.Background()

	_, err := r.Authenticate(ctx, email, password)
	require.NoError(t, err)
	require.NoError(t, r.Connect(ctx))

	u, err := r.Register(ctx, user.Registration{Name: "Bia", Email: "bia@condo.com", Password: "0utr@Senha99", ProfileID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "bia@condo.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	other := NewRemote(New(r.baseURL, slog.Default()))
	_, err = other.Authenticate(ctx, "bia@condo.com", "0utr@Senha99")
	assert.NoError(t, err)
}

func TestToken_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "condoadmin", "token")

	token, err := LoadToken(path)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, SaveToken(path, "abc.def.ghi"))
	token, err = LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestNew_AddsScheme(t *testing.T) {
	c := New("localhost:8080/", slog.Default())
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

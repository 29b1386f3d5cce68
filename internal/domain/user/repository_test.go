package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"condoadmin/internal/domain/collection"
	"condoadmin/internal/storage"
	"condoadmin/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

func newRecords(t *testing.T, raw string) (*collection.Service, *Service) {
	t.Helper()
	guard := storage.NewGuard(memory.NewFromJSON([]byte(raw)))

	// the hook needs the service and the service needs the repo, so wire in two steps
	var users *Service
	defs := collection.WithPrepare(collection.DefaultDefinitions(), collection.Usuarios, func(fields storage.Record) error {
		return users.PreparePassword(fields)
	})
	records := collection.NewService(guard, defs, slog.Default())
	users = NewService(NewRepo(records), NewPasswordValidator(), slog.Default())
	return records, users
}

func TestRepository_RegisterAndAuthenticate(t *testing.T) {
	records, users := newRecords(t, `{"perfil":[{"id":1,"description":"Administrador"}]}`)
	ctx := context.Background()

	u, err := users.Register(ctx, Registration{Name: "Ana", Email: "Ana@Condo.com", Password: strongPassword, ProfileID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
	assert.Equal(t, "1", u.ProfileID)

	rec, err := records.Get(ctx, collection.Usuarios, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec["password"].(string)), []byte(strongPassword)))

	got, err := users.Authenticate(ctx, "ana@condo.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.Register(ctx, Registration{Name: "Ana", Email: "ana@condo.com", Password: strongPassword})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRepository_ConcurrentRegisterSameEmail(t *testing.T) {
	records, users := newRecords(t, `{}`)
	ctx := context.Background()

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := users.Register(ctx, Registration{
				Name:     fmt.Sprintf("Ana %d", i),
				Email:    "ana@condo.com",
				Password: strongPassword,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInvalidInput):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dups)

	page, err := records.List(ctx, collection.Usuarios, collection.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestRepository_FindByEmail_Pages(t *testing.T) {
	guard := storage.NewGuard(memory.NewFromJSON([]byte(`{}`)))
	records := collection.NewService(guard, collection.DefaultDefinitions(), slog.Default())
	repo := NewRepo(records)
	ctx := context.Background()

	// every address contains the searched one, so the match sits on a later page
	for i := 0; i < lookupPageSize+5; i++ {
		_, err := records.Create(ctx, collection.Usuarios, storage.Record{
			"name":     fmt.Sprintf("Morador %d", i),
			"email":    fmt.Sprintf("p%d.morador@condo.com", i),
			"password": "hash",
		})
		require.NoError(t, err)
	}
	_, err := records.Create(ctx, collection.Usuarios, storage.Record{
		"name":     "Morador",
		"email":    "morador@condo.com",
		"password": "hash",
	})
	require.NoError(t, err)

	u, err := repo.FindByEmail(ctx, "MORADOR@condo.com")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(lookupPageSize+6), u.ID)
	assert.Equal(t, "Morador", u.Name)

	_, err = repo.FindByEmail(ctx, "nobody@condo.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

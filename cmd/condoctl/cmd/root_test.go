package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"condoadmin/internal/app/admin"
	"condoadmin/internal/app/server"
	"condoadmin/internal/app/server/api"
	"condoadmin/internal/config"
	"condoadmin/internal/domain/user"
	"condoadmin/internal/storage"
	"condoadmin/internal/storage/memory"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// resetFlags undoes values left over from a previous Execute on the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCondoctl(t *testing.T) {
	t.Setenv("STORE_BACKEND", "json")
	t.Setenv("APP_ENV", "prod")
	data := filepath.Join(t.TempDir(), "db.json")

	out, err := run(t, "", "--store", data, "collections")
	require.NoError(t, err)
	assert.Contains(t, out, "movimentacoes")

	out, err = run(t, "", "--store", data, "create", "perfil", "--set", "description=Administrador")
	require.NoError(t, err, out)
	assert.Contains(t, out, "perfil #1")

	_, err = run(t, "", "--store", data, "update", "perfil", "7", "--set", "description=x")
	assert.Error(t, err)

	out, err = run(t, "P@ssw0rd123!\n", "--store", data, "user", "add", "--name", "Ana", "--email", "ana@condo.com", "--profile", "1", "--password-stdin")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ana@condo.com")
	assert.NotContains(t, out, "P@ssw0rd123!")

	out, err = run(t, "", "--store", data, "--json", "list", "usuarios")
	require.NoError(t, err, out)
	var page struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Administrador", page.Items[0]["profileDescription"])
	assert.NotContains(t, page.Items[0], "password")

	_, err = run(t, "", "--store", data, "get", "condominios", "1")
	assert.Error(t, err)

	raw, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"$2a$`, "the stored password is a bcrypt hash")
}

func newServer(t *testing.T) string {
	t.Helper()
	log := slog.Default()

	guard := storage.NewGuard(memory.NewFromJSON([]byte(`{"perfil":[{"id":1,"description":"Administrador"}]}`)))
	domain, err := server.NewDomain(guard, config.Auth{Secret: "test-secret", TokenTTL: time.Hour}, log)
	require.NoError(t, err)

	_, err = domain.Users.Register(context.Background(), user.Registration{
		Name: "Ana", Email: "ana@condo.com", Password: "P@ssw0rd123!", ProfileID: "1",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(api.New(api.Services{
		Collections: domain.Collections,
		Users:       domain.Users,
		Sessions:    domain.Sessions,
	}, log))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestCondoctl_Remote(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CONDO_TOKEN", "")
	url := newServer(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	_, err := run(t, "", "--server", url, "--token-file", tokenFile, "collections")
	assert.Error(t, err, "no token yet")

	_, err = run(t, "wrong\n", "--server", url, "--token-file", tokenFile, "login", "--email", "ana@condo.com", "--password-stdin")
	assert.Error(t, err)

	out, err := run(t, "P@ssw0rd123!\n", "--server", url, "--token-file", tokenFile, "login", "--email", "ana@condo.com", "--password-stdin")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ana@condo.com")

	saved, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(string(saved)))

	out, err = run(t, "", "--server", url, "--token-file", tokenFile, "create", "boletos",
		"--data", `{"unidadeId":"101","valor":350,"vencimento":"2024-05-10","status":"Pendente"}`)
	require.NoError(t, err, out)
	assert.Contains(t, out, "boletos #1")

	out, err = run(t, "", "--server", url, "--token-file", tokenFile, "--json", "list", "boletos", "--search", "pend")
	require.NoError(t, err, out)
	var page struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.Total)

	out, err = run(t, "", "--server", url, "--token-file", tokenFile, "--json", "list", "usuarios")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"profileDescription": "Administrador"`)
	assert.NotContains(t, out, "password")

	_, err = run(t, "", "--server", url, "--token-file", tokenFile, "create", "boletos", "--set", "valor=-5")
	assert.Error(t, err)
}

func TestCondoctl_LoginNeedsServer(t *testing.T) {
	t.Setenv("CONDO_SERVER", "")
	data := filepath.Join(t.TempDir(), "db.json")

	_, err := run(t, "x\n", "--store", data, "login", "--email", "ana@condo.com", "--password-stdin")
	assert.ErrorIs(t, err, admin.ErrNotRemote)
}

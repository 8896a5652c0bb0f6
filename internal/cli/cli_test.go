package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/sareecatalog/internal/service"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAdminCreateCommand(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", filepath.Join(t.TempDir(), "catalog.db"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := run(t, "migrate")
	require.NoError(t, err)

	out, err := run(t, "admin", "create", "--username", "meena", "--full-name", "Meena", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "created admin meena")

	_, err = run(t, "admin", "create", "--username", "meena", "--full-name", "Again", "--password", "pw")
	assert.Equal(t, 409, service.StatusOf(err))

	_, err = run(t, "admin", "create", "--username", "ravi")
	assert.ErrorContains(t, err, "required flag")
}

func TestBootstrapRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

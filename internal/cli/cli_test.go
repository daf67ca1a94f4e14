package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yegors/heliflight/internal/auth"
	"github.com/yegors/heliflight/internal/model"
	"github.com/yegors/heliflight/internal/storage"
	"github.com/yegors/heliflight/pkg/logger"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Cleanup(func() {
		flagAdminLogin, flagAdminPassword = "", ""
		for _, f := range []string{"config", "env-file", "driver", "dsn", "log-level", "log-format", "log-output"} {
			require.NoError(t, rootCmd.PersistentFlags().Set(f, ""))
			rootCmd.PersistentFlags().Lookup(f).Changed = false
		}
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	out, err := execute(t, "config", "--log-level", "debug", "--dsn", "fleet.db")
	require.NoError(t, err)
	assert.Contains(t, out, `level = "debug"`)
	assert.Contains(t, out, `dsn = "fleet.db"`)
	assert.Contains(t, out, `driver = "sqlite"`)
}

func TestInitDBCreatesAdmin(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "fleet.db") + "?_pragma=foreign_keys(1)&_txlock=immediate"

	out, err := execute(t, "init-db", "--dsn", dsn, "--log-output", "stderr", "--log-level", "error",
		"--admin-login", "chief", "--admin-password", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date.")
	assert.Contains(t, out, `Administrator "chief" created.`)

	db, err := storage.Open(context.Background(), storage.Config{Driver: "sqlite", DSN: dsn}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	session, err := auth.NewAuthenticator(db, logger.NewNop()).Authenticate(context.Background(), "chief", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, session.Role)
}

func TestInitDBRequiresBothAdminFlags(t *testing.T) {
	_, err := execute(t, "init-db", "--admin-login", "chief")
	assert.ErrorContains(t, err, "must be given together")
}

func TestUnknownDriverIsRejected(t *testing.T) {
	_, err := execute(t, "config", "--driver", "oracle")
	assert.ErrorContains(t, err, "invalid config")
}

// chdir changes the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

package repository

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dayzzy/tasky/database"
)

// newTestDB, geçici dizinde migration'ları uygulanmış bir test DB açar.
// t.TempDir() test bitince otomatik silinir.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

package postgres_test

import (
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3/sqlparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-movements-api/internal/infrastructure/postgres"
)

func TestMigrations_AreGooseAnnotated(t *testing.T) {
	names, err := fs.Glob(postgres.Migrations(), "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"001_init.sql", "002_users.sql"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			for _, dir := range []sqlparser.Direction{sqlparser.DirectionUp, sqlparser.DirectionDown} {
				f, err := postgres.Migrations().Open(name)
				require.NoError(t, err)
				stmts, useTx, err := sqlparser.ParseSQLMigration(f, dir, false)
				_ = f.Close()
				require.NoError(t, err)
				assert.NotEmpty(t, stmts, "sección %s vacía", dir)
				assert.True(t, useTx)
			}
		})
	}
}

package dbtest

import (
	"net/http"
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stellar/go-stellar-sdk/support/db/dbtest"
	"github.com/stellar/go-stellar-sdk/support/db/schema"

	"github.com/stellar/portfolio-backend/internal/db/migrations"
)

// Open returns a fresh Postgres test database with every migration applied.
func Open(t *testing.T) *dbtest.DB {
	db := OpenWithoutMigrations(t)
	conn := db.Open()
	defer conn.Close()

	m := migrate.HttpFileSystemMigrationSource{FileSystem: http.FS(migrations.FS)}
	_, err := schema.Migrate(conn.DB, m, schema.MigrateUp, 0)
	if err != nil {
		t.Fatal(err)
	}

	return db
}

func OpenWithoutMigrations(t *testing.T) *dbtest.DB {
	return dbtest.Postgres(t)
}

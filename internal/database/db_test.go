package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateMemory(t *testing.T) {
	db, err := OpenAndMigrate(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	_, err = db.Exec(`INSERT INTO shows(cards, fifteens, pairs, runs, total, source, discarded) VALUES ('5H 10H', 2, 0, 0, 2, 'score', '')`)
	require.NoError(t, err)
}

func TestOpenAndMigrateFileIsIdempotent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "shows.db")
	db, err := OpenAndMigrate(p)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenAndMigrate(p)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestOpenAndMigrateRequiresPath(t *testing.T) {
	_, err := OpenAndMigrate("")
	require.Error(t, err)
}

func TestMigrateRollsBackFailedFile(t *testing.T) {
	db, err := OpenAndMigrate(":memory:")
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"migrations/0100_bad.sql": {Data: []byte("CREATE TABLE t1 (id INTEGER);\nNOT SQL AT ALL;")},
	}
	err = Migrate(context.Background(), db, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0100_bad.sql")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 't1'`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("-- header\nCREATE TABLE a (x INT); -- trailing\n\nCREATE INDEX i ON a(x);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a(x)"}, got)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x.db?mode=ro", sqliteDSN("file:x.db?mode=ro"))
	assert.Equal(t, "file:data/x.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("data/x.db"))
}

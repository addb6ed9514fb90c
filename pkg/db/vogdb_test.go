package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SchemaPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vogdb.sqlite")

	rw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, CreateSchema(context.Background(), rw))
	require.NoError(t, rw.Close())

	db, err := Open(path, 2)
	require.NoError(t, err)
	defer db.Close()

	// query_only: the service can never write
	_, err = db.Exec(`INSERT INTO species VALUES (1, 'x', 0, 'NCBI', 1)`)
	assert.Error(t, err)
}

func TestOpen_MissingTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sqlite")

	rw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = rw.Exec(`CREATE TABLE species (taxon_id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	_, err = Open(path, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vog_profile")
	assert.NotContains(t, err.Error(), "tables: species")
}

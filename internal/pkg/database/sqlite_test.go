package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondgbrowse/snowgate/internal/config"
)

func TestNewSQLite_Memory(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLite(ctx, config.SQLiteConfig{Path: ":memory:"},
		`CREATE TABLE IF NOT EXISTS datasets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
		 INSERT INTO datasets (id, name) VALUES (1, 'hela');`)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping(ctx))

	var name string
	require.NoError(t, db.DB.GetContext(ctx, &name, "SELECT name FROM datasets WHERE id = ?", 1))
	assert.Equal(t, "hela", name)
}

func TestNewSQLite_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")
	schema := `CREATE TABLE IF NOT EXISTS datasets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`

	db, err := NewSQLite(ctx, config.SQLiteConfig{Path: path}, schema)
	require.NoError(t, err)
	_, err = db.DB.ExecContext(ctx, "INSERT INTO datasets (id, name) VALUES (?, ?)", 7, "yeast")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening applies the schema again without touching existing rows
	db, err = NewSQLite(ctx, config.SQLiteConfig{Path: path}, schema)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM datasets"))
	assert.Equal(t, 1, count)
}

func TestNewSQLite_BadSchema(t *testing.T) {
	db, err := NewSQLite(context.Background(), config.SQLiteConfig{Path: ":memory:"}, "CREATE TABLE (")
	assert.Nil(t, db)
	assert.Error(t, err)
}

func TestIsMemory(t *testing.T) {
	assert.True(t, isMemory(":memory:"))
	assert.True(t, isMemory("file:test?mode=memory&cache=shared"))
	assert.False(t, isMemory("/var/lib/snowgate/store.db"))
}

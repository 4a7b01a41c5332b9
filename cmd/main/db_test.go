package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB(t *testing.T) {
	dir := t.TempDir()

	db, err := initDB(filepath.Join(dir, "tally.db") + "?_journal_mode=WAL&_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode;").Scan(&mode))
	assert.Equal(t, "wal", mode)

	_, err = initDB(filepath.Join(dir, "missing", "tally.db"))
	assert.Error(t, err, "a database in a missing directory cannot be opened")
}

package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaStatements_UsePrefix(t *testing.T) {
	stmts := SchemaStatements(NewTableNames("test_"))
	require.NotEmpty(t, stmts)

	joined := strings.Join(stmts, "\n")
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS test_folders")
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS test_weddings")
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS test_media")
	assert.Contains(t, joined, "idx_test_media_wedding")
	assert.NotContains(t, joined, " folders(")
}

func TestSchemaStatements_FolderSiblingsUnique(t *testing.T) {
	stmts := SchemaStatements(NewTableNames(""))

	var folders string
	for _, s := range stmts {
		if strings.Contains(s, "CREATE TABLE IF NOT EXISTS folders") {
			folders = s
		}
	}
	require.NotEmpty(t, folders)
	assert.Contains(t, folders, "UNIQUE NULLS NOT DISTINCT (owner_id, parent_id, name)")
}

func TestSchemaStatements_TablesBeforeIndexes(t *testing.T) {
	stmts := SchemaStatements(NewTableNames("dev_"))

	seenIndex := false
	for _, s := range stmts {
		isIndex := strings.Contains(s, "CREATE INDEX")
		if seenIndex {
			assert.True(t, isIndex, "table created after an index: %s", s)
		}
		seenIndex = seenIndex || isIndex
	}
}

func TestDropStatements_ReverseDependencyOrder(t *testing.T) {
	assert.Equal(t, []string{
		"DROP TABLE IF EXISTS dev_media CASCADE",
		"DROP TABLE IF EXISTS dev_weddings CASCADE",
		"DROP TABLE IF EXISTS dev_folders CASCADE",
	}, DropStatements(NewTableNames("dev_")))
}

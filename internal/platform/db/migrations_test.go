package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, e := range entries {
		raw, err := fs.ReadFile(Migrations, MigrationsDir+"/"+e.Name())
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.Contains(body, "-- +goose Up"), "%s lacks an Up section", e.Name())
		assert.True(t, strings.Contains(body, "-- +goose Down"), "%s lacks a Down section", e.Name())
	}
}

// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package migration_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../data/migrations"

func readMigration(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(migrationsDir, name))
	require.NoError(t, err)
	return string(content)
}

/*
TestMigrationsComeInPairs ensures every UP migration has a matching DOWN so
golang-migrate can roll back any version.
*/
func TestMigrationsComeInPairs(t *testing.T) {
	entries, err := os.ReadDir(migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	seen := make(map[string]bool)
	for _, entry := range entries {
		seen[entry.Name()] = true
	}

	for name := range seen {
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		assert.True(t, seen[down], "missing %s", down)
	}
}

/*
TestInitSchemaUniqueConstraints guards the uniqueness invariants the domain
relies on: publisher identity (name and slug) and the ISBN dedup key.
*/
func TestInitSchemaUniqueConstraints(t *testing.T) {
	schema := readMigration(t, "000001_init.up.sql")

	tests := []struct {
		name    string
		pattern string
	}{
		{"publisher_name_unique", `name\s+TEXT\s+NOT NULL UNIQUE`},
		{"publisher_slug_unique", `slug\s+TEXT\s+NOT NULL UNIQUE`},
		{"isbn_13_unique", `isbn_13\s+TEXT\s+UNIQUE`},
		{"provenance_triple_unique", `UNIQUE \(source_name, external_id, release_id\)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), schema)
		})
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package store

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every embedded migration must follow NNNNNN_name.(up|down).sql and come in
// an up/down pair; golang-migrate silently misbehaves otherwise.
func TestMigrationsFS_EmbeddedFiles(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	pattern := regexp.MustCompile(`^\d{6}_[a-z0-9_]+\.(up|down)\.sql$`)
	ups := make(map[string]bool)
	downs := make(map[string]bool)

	for _, entry := range entries {
		name := entry.Name()
		assert.Regexp(t, pattern, name)

		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.Equal(t, ups, downs, "every up migration needs a matching down")
}

// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-31",
		"workers": [
			{
				"id": "notify-return-status",
				"taskType": "notify-return-status",
				"errorCodes": ["SELLER_NOT_FOUND"],
				"retries": 3
			}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Workers, 1)
	assert.Equal(t, 3, reg.Workers[0].Retries)
}

func TestFindByTaskType(t *testing.T) {
	reg := &WorkerRegistry{
		Workers: []Worker{
			{ID: "a", TaskType: "notify-return-status"},
			{ID: "b", TaskType: "other-task"},
		},
	}

	w, ok := reg.FindByTaskType("notify-return-status")
	require.True(t, ok)
	assert.Equal(t, "a", w.ID)

	_, ok = reg.FindByTaskType("unknown")
	assert.False(t, ok)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

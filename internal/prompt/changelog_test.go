package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadChangeLog(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    any
	}{
		{"text", "changes.txt", "PID-8 added\n", "PID-8 added\n"},
		{"json", "changes.json", `{"added": ["PID-8"]}`, map[string]any{"added": []any{"PID-8"}}},
		{"hjson", "changes.hjson", "{\n  # reviewed\n  added: [\"PID-8\"]\n}", map[string]any{"added": []any{"PID-8"}}},
		{"yaml", "changes.yaml", "added:\n  - PID-8\n", map[string]any{"added": []any{"PID-8"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadChangeLog(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadChangeLog_Errors(t *testing.T) {
	_, err := LoadChangeLog(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)

	_, err = LoadChangeLog(writeFile(t, "bad.yaml", "added: [unclosed"))
	assert.Error(t, err)
}

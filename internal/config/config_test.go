package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		content           string
		check             func(t *testing.T, cfg Config)
		wantErrorContains []string
	}{
		{
			name:    "empty file uses defaults",
			content: "",
			check: func(t *testing.T, cfg Config) {
				want := Default()
				assert.Equal(t, want.Nav, cfg.Nav)
				assert.Equal(t, "sqlite", cfg.Storage.Backend)
				assert.Equal(t, "base36", cfg.IDs.Scheme)
				assert.Equal(t, "Mood", cfg.Mood.Category)
				assert.NotContains(t, cfg.Storage.Path, "~")
			},
		},
		{
			name: "custom values",
			content: `theme: purple
storage:
  backend: diskv
  path: /tmp/lifelog
ids:
  scheme: uuid
nav:
  pages: 4
  start_page: 1
  velocity: 0.9
reminder:
  workdays: [monday, " tuesday ", x]
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "purple", cfg.Theme)
				assert.Equal(t, StorageConfig{Backend: "diskv", Path: "/tmp/lifelog"}, cfg.Storage)
				assert.Equal(t, "uuid", cfg.IDs.Scheme)
				assert.Equal(t, 4, cfg.Nav.Pages)
				assert.Equal(t, 1, cfg.Nav.StartPage)
				assert.InDelta(t, 0.9, cfg.Nav.Velocity, 1e-9)
				assert.InDelta(t, 0.35, cfg.Nav.RubberBand, 1e-9)
				assert.Equal(t, []string{"Mon", "Tue"}, cfg.Reminder.Workdays)
			},
		},
		{
			name: "start page beyond page count",
			content: `nav:
  pages: 3
  start_page: 4
`,
			wantErrorContains: []string{"invalid configuration", "nav.start_page"},
		},
		{
			name: "more pages than screens",
			content: `nav:
  pages: 6
`,
			wantErrorContains: []string{"nav.pages"},
		},
		{
			name: "unknown backend",
			content: `storage:
  backend: redis
`,
			wantErrorContains: []string{"storage.backend"},
		},
		{
			name: "invalid yaml",
			content: `nav:
  pages: [[[
`,
			wantErrorContains: []string{"read config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				for _, s := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), s)
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFELOG_STORAGE_BACKEND", "memory")
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestValidateMemoryBackendNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Storage = StorageConfig{Backend: "memory"}
	assert.NoError(t, Validate(cfg))

	cfg.Storage = StorageConfig{Backend: "sqlite"}
	assert.Error(t, Validate(cfg))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[development]
addr = ":9090"
log_level = "debug"
store = "memory"
cache_size_mb = 4

[production]
log_level = "warn"
logs_path = "/var/log/familyfit/server"
store = "postgres"
postgres_url = "postgres://file@db/familyfit"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Sections(t *testing.T) {
	path := writeConfig(t, sample)

	dev, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "dev", dev.Environment)
	assert.Equal(t, ":9090", dev.Addr)
	assert.Equal(t, "debug", dev.LogLevel)
	assert.Equal(t, StoreMemory, dev.Store)
	assert.Equal(t, 4, dev.CacheSizeMB)
	assert.Equal(t, "web", dev.WebDir)

	prod, err := Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", prod.Addr)
	assert.Equal(t, StorePostgres, prod.Store)
	assert.Equal(t, "postgres://file@db/familyfit", prod.PostgresURL)
	assert.Equal(t, "familyfit", prod.MetricsNamespace)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("development", filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, StoreSqlite, cfg.Store)
	assert.Equal(t, "familyfit.db", cfg.SqlitePath)
	assert.Equal(t, "familyfit:", cfg.RedisPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, sample)
	t.Setenv("FAMILYFIT_ADDR", ":7000")
	t.Setenv("FAMILYFIT_POSTGRES_URL", "postgres://env@db/familyfit")
	t.Setenv("FAMILYFIT_REDIS_PASS", "secret")

	cfg, err := Load("prod", path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "postgres://env@db/familyfit", cfg.PostgresURL)
	assert.Equal(t, "secret", cfg.RedisPass)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		content string
	}{
		{"unknown env", "staging", sample},
		{"missing section", "production", "[development]\nstore = \"memory\"\n"},
		{"bad toml", "development", "[development\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.env, writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"memory", "[development]\nstore = \"memory\"\n", false},
		{"default sqlite", "[development]\n", false},
		{"unknown store", "[development]\nstore = \"etcd\"\n", true},
		{"postgres without url", "[development]\nstore = \"postgres\"\n", true},
		{"negative cache", "[development]\ncache_size_mb = -1\n", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("FAMILYFIT_POSTGRES_URL", "")
			cfg, err := Load("development", writeConfig(t, tc.content))
			require.NoError(t, err)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_DoesNotValidate(t *testing.T) {
	t.Setenv("FAMILYFIT_POSTGRES_URL", "")
	cfg, err := Load("production", writeConfig(t, "[production]\nstore = \"postgres\"\n"))
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)

	// a command-line switch to sqlite makes the section usable
	cfg.Store = StoreSqlite
	assert.NoError(t, cfg.Validate())
}

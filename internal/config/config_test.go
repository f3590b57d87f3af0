package config

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ADDR", "LOG_LEVEL", "CATALOG_BACKEND", "DB_DSN", "MONGO_URI", "MONGO_DATABASE",
	"FIRESTORE_PROJECT", "CATALOG_COLLECTION", "LOAN_PERIOD_DAYS", "STORE_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "ENABLE_HSTS",
	"TRUSTED_PROXIES",
}

// cleanEnv clears the variables Load reads and runs the test from an empty
// directory so no .env file leaks in.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 14*24*time.Hour, cfg.LoanPeriod)
	assert.Nil(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EnableHSTS)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, BackendPostgres, cfg.Catalog.Backend)
	assert.Equal(t, "books", cfg.Catalog.Collection)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CATALOG_BACKEND", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("LOAN_PERIOD_DAYS", "7")
	t.Setenv("STORE_TIMEOUT", "500ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.Catalog.Backend)
	assert.Equal(t, "mongodb://db:27017", cfg.Catalog.MongoURI)
	assert.Equal(t, 7*24*time.Hour, cfg.LoanPeriod)
	assert.Equal(t, 500*time.Millisecond, cfg.Catalog.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
	}, cfg.TrustedProxies)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"loan period not a number", map[string]string{"LOAN_PERIOD_DAYS": "two"}, "LOAN_PERIOD_DAYS"},
		{"loan period zero", map[string]string{"LOAN_PERIOD_DAYS": "0"}, "LOAN_PERIOD_DAYS"},
		{"bad timeout", map[string]string{"STORE_TIMEOUT": "soon"}, "STORE_TIMEOUT"},
		{"bad rate", map[string]string{"RATE_LIMIT_RPS": "-1"}, "RATE_LIMIT_RPS"},
		{"bad burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST"},
		{"bad trusted proxy", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8,proxy.local"}, "TRUSTED_PROXIES"},
		{"unknown backend", map[string]string{"CATALOG_BACKEND": "redis"}, "CATALOG_BACKEND"},
		{"firestore without project", map[string]string{"CATALOG_BACKEND": "firestore"}, "FIRESTORE_PROJECT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	cleanEnv(t)
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ADDR=:9000\nLOG_LEVEL=debug\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("APP_ADDR=:9100\nCATALOG_COLLECTION=library\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr, ".env is read first and not overridden")
	assert.Equal(t, "warn", cfg.LogLevel, "real environment wins")
	assert.Equal(t, "library", cfg.Catalog.Collection)
}

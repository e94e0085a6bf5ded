package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neorent/forecast/internal/calculation"
)

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "FR", settings.DefaultCountry)
	assert.Equal(t, calculation.ChargeBasisAverage, settings.Basis())
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "console", settings.Log.Format)
	assert.Equal(t, "sqlite", settings.DB.Driver)
	assert.Equal(t, ":8080", settings.Server.Address)
	assert.Equal(t, 10*time.Second, settings.Server.ReadTimeout)
}

func TestLoadSettings_Environment(t *testing.T) {
	t.Setenv("NEORENT_DB_DRIVER", "postgres")
	t.Setenv("NEORENT_DB_DSN", "host=localhost user=neorent dbname=neorent sslmode=disable")
	t.Setenv("NEORENT_CHARGE_BASIS", "last-month")
	t.Setenv("NEORENT_SERVER_ADDR", "127.0.0.1:9090")

	settings, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "postgres", settings.DB.Driver)
	assert.Contains(t, settings.DB.DSN, "dbname=neorent")
	assert.Equal(t, calculation.ChargeBasisLastMonth, settings.Basis())
	assert.Equal(t, "127.0.0.1:9090", settings.Server.Address)
}

func TestLoadSettings_DefaultCountry(t *testing.T) {
	t.Setenv("NEORENT_DEFAULT_COUNTRY", "be")
	settings, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "be", settings.DefaultCountry)

	t.Setenv("NEORENT_DEFAULT_COUNTRY", "XX")
	_, err = LoadSettings(NewViper(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `default country "XX" has no tax table`)
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neorent.yaml")
	content := "default_country: BE\nlog:\n  level: debug\n  format: json\nserver:\n  read_timeout: 5s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "BE", settings.DefaultCountry)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)
	assert.Equal(t, 5*time.Second, settings.Server.ReadTimeout)
	assert.Equal(t, "sqlite", settings.DB.Driver, "unset keys keep their defaults")
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading settings file")

	tests := []struct {
		key    string
		value  string
		errMsg string
	}{
		{"charge_basis", "median", "unknown charge basis"},
		{"log.level", "verbose", "invalid log level"},
		{"log.format", "xml", "invalid log format"},
		{"db.driver", "mysql", "unsupported database driver"},
		{"default_country", "DE", "has no tax table"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := NewViper()
			v.Set(tt.key, tt.value)
			_, err := LoadSettings(v, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/neorent/forecast/internal/calculation"
)

// EnvPrefix prefixes every environment variable read into Settings
const EnvPrefix = "NEORENT"

// Settings holds the runtime parameters of the neorent binaries
type Settings struct {
	DefaultCountry string         `mapstructure:"default_country"`
	ChargeBasis    string         `mapstructure:"charge_basis"`
	Log            LoggingConfig  `mapstructure:"log"`
	DB             DatabaseConfig `mapstructure:"db"`
	Server         ServerConfig   `mapstructure:"server"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, console
	OutputFile string `mapstructure:"output_file"`
}

// DatabaseConfig selects the SQL snapshot store
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres
	DSN    string `mapstructure:"dsn"`
}

// ServerConfig holds HTTP server parameters
type ServerConfig struct {
	Address      string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// NewViper returns a viper instance carrying the defaults and environment binding
// of Settings. NEORENT_DB_DSN overrides db.dsn, and so on.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("default_country", calculation.DefaultCountry)
	v.SetDefault("charge_basis", string(calculation.ChargeBasisAverage))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "neorent.db")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads an optional settings file into v and decodes the result.
// An empty path uses defaults, environment and whatever flags are bound to v.
func LoadSettings(v *viper.Viper, path string) (*Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &settings, nil
}

// Validate checks the enumerated settings
func (s *Settings) Validate() error {
	if s.DefaultCountry != "" {
		if _, _, ok := calculation.DefaultTaxConfig().Table(s.DefaultCountry); !ok {
			return fmt.Errorf("default country %q has no tax table", s.DefaultCountry)
		}
	}
	if _, err := calculation.ParseChargeBasis(s.ChargeBasis); err != nil {
		return err
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Log.Level)
	}
	switch s.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Log.Format)
	}
	switch s.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q (want sqlite or postgres)", s.DB.Driver)
	}
	return nil
}

// Basis returns the parsed charge basis
func (s *Settings) Basis() calculation.ChargeBasis {
	basis, err := calculation.ParseChargeBasis(s.ChargeBasis)
	if err != nil {
		return calculation.ChargeBasisAverage
	}
	return basis
}

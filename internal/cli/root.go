// Package cli implements the neorent command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/neorent/forecast/internal/calculation"
	"github.com/neorent/forecast/internal/config"
	"github.com/neorent/forecast/internal/store"
)

// app carries state shared by every subcommand once settings are loaded
type app struct {
	v            *viper.Viper
	settingsPath string
	logLevel     string
	settings     *config.Settings
	logger       *zap.Logger
}

// NewRootCmd builds the neorent command with every subcommand attached
func NewRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "neorent",
		Short:         "Rental portfolio profitability forecasting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.settingsPath, "settings", "", "path to a settings file (yaml, json or toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.String("country", "", "default tax country")
	flags.String("charge-basis", "", "monthly charges basis (average, last-month)")
	flags.String("db-driver", "", "snapshot database driver (sqlite, postgres)")
	flags.String("db-dsn", "", "snapshot database DSN")
	for key, flag := range map[string]string{
		"log.format":      "log-format",
		"default_country": "country",
		"charge_basis":    "charge-basis",
		"db.driver":       "db-driver",
		"db.dsn":          "db-dsn",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		TaxCmd(a),
		LoanCmd(a),
		SimulateCmd(a),
		ReportCmd(a),
		ExampleCmd(a),
		DBCmd(a),
		ServeCmd(a),
	)
	return rootCmd
}

// setup resolves settings and the logger. Unset flags keep file, env and defaults.
func (a *app) setup() error {
	settings, err := config.LoadSettings(a.v, a.settingsPath)
	if err != nil {
		return err
	}
	logger, err := initializeLogger(settings.Log, a.logLevel)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	return nil
}

// engine builds a calculation engine honouring the settings
func (a *app) engine() *calculation.Engine {
	taxConfig := calculation.DefaultTaxConfig()
	if a.settings != nil && a.settings.DefaultCountry != "" {
		taxConfig.DefaultCountry = a.settings.DefaultCountry
	}
	e := calculation.NewEngineWithTaxConfig(taxConfig)
	e.SetLogger(a.logger.Sugar())
	if a.settings != nil {
		e.SetChargeBasis(a.settings.Basis())
	}
	return e
}

// openStore connects to the configured snapshot database
func (a *app) openStore() (*store.Store, error) {
	s, err := store.Open(a.settings.DB.Driver, a.settings.DB.DSN)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opened snapshot store", zap.String("driver", a.settings.DB.Driver))
	return s, nil
}

// source picks the YAML file when input is set, else the database. The returned
// closer releases the database connection.
func (a *app) source(input string, useDB bool) (store.Source, func(), error) {
	switch {
	case input != "" && useDB:
		return nil, nil, fmt.Errorf("--input and --db are mutually exclusive")
	case input != "":
		return store.NewFileSource(input), func() {}, nil
	case useDB:
		s, err := a.openStore()
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("one of --input or --db is required")
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

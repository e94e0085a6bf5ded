package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DBCmd groups the snapshot database commands
func DBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the snapshot database",
	}
	cmd.AddCommand(dbImportCmd(a), dbMigrateCmd(a))
	return cmd
}

func dbImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored snapshot with a portfolio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")

			cfg, err := loadFile(cmd, input)
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Import(commandContext(cmd), cfg); err != nil {
				return err
			}
			a.logger.Info("snapshot imported",
				zap.String("input", input),
				zap.Int("properties", len(cfg.Properties)),
				zap.Int("payments", len(cfg.Payments)),
				zap.Int("charges", len(cfg.Charges)),
			)
			fmt.Fprintf(out(cmd), "Imported %d properties from %s\n", len(cfg.Properties), input)
			return nil
		},
	}

	cmd.Flags().String("input", "", "portfolio YAML file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func dbMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the snapshot tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open migrates
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintln(out(cmd), "Snapshot tables up to date")
			return nil
		},
	}
}

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neorent/forecast/internal/server"
)

// ServeCmd runs the HTTP API
func ServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forecasting API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			useDB, _ := cmd.Flags().GetBool("db")
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				a.settings.Server.Address = addr
			}

			src, closeSource, err := a.source(input, useDB)
			if err != nil {
				return err
			}
			defer closeSource()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.engine(), src, a.logger)
			return srv.ListenAndServe(ctx, a.settings.Server)
		},
	}

	cmd.Flags().String("input", "", "portfolio YAML file")
	cmd.Flags().Bool("db", false, "serve the snapshot database")
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")

	return cmd
}

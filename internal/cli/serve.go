package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdxmph/addressbook/internal/api"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contacts REST API",
		Long: `Serve exposes the contacts under /api/contacts, with /liveness,
/readiness and /metrics for operators. It stops gracefully on SIGINT or
SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", a.cfg.Server.Addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := api.NewRouter("addressbook", Version, store, a.log)
			srv := api.NewServer(a.cfg.Server.Addr, handler, a.log)
			return api.Serve(ctx, srv, ln, a.log)
		},
	}
	cmd.Flags().String(keyAddr, "", "listen address (default from config, 127.0.0.1:8888)")
	return cmd
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tzneal/osgrid/internal/server"
)

// NewServeCommand runs the HTTP API.
func NewServeCommand() *cobra.Command {
	addr := envOr("OSGRID_LISTEN", "127.0.0.1:8080")

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ds, err := loadDataset()
			if err != nil {
				return err
			}
			if logrus.GetLevel() < logrus.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(ds, logrus.StandardLogger()).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "listen", addr, "address to listen on")
	return cmd
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/server"
)

func newServeCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the posts for local preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(svc, server.Config{
				Site:        a.site(),
				Addr:        a.cfg.Addr,
				Description: a.cfg.Description,
				FeedLimit:   a.cfg.FeedLimit,
				Cache:       watch,
				Logger:      a.logger,
			})
			if watch {
				if err := srv.Watch(ctx); err != nil {
					return err
				}
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :3000)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Cache posts and reload them when the content changes")
	return cmd
}

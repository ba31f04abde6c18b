package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the context menu, popup and push channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			p, err := buildProvider(a.cfg)
			if err != nil {
				return err
			}
			prefs, closeStore, err := buildStore(a.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			overlay, err := a.cfg.OverlayDuration()
			if err != nil {
				return err
			}

			var ctrl *furigo.Controller
			hub := server.NewHub(
				server.WithHubLogger(a.logger),
				server.WithResponder(func(msg furigo.Message) (furigo.TranslationResult, bool) {
					return ctrl.Respond(msg)
				}),
			)
			translator := furigo.NewTranslator(p, furigo.WithLogger(a.logger))
			ctrl = furigo.NewController(translator,
				furigo.WithNotifier(hub),
				furigo.WithOverlay(a.cfg.Server.Overlay),
				furigo.WithControllerLogger(a.logger),
			)

			srv, err := server.New(server.Config{
				Addr:            a.cfg.Server.Addr,
				CORSOrigins:     a.cfg.Server.CORSOrigins,
				OverlayDuration: overlay,
			}, ctrl, hub, prefs, server.WithLogger(a.logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

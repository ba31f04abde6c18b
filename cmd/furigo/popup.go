package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/client"
	"github.com/ZaguanLabs/furigo/display"
	"github.com/spf13/cobra"
)

func newPopupCmd(a *app) *cobra.Command {
	var (
		host     string
		plain    bool
		learning bool
		follow   bool
	)

	cmd := &cobra.Command{
		Use:   "popup",
		Short: "Show the latest translation from a running host",
		Long: `Show the latest translation from a running host.

--plain and --learning switch the display mode and store the choice on the
host. --follow keeps the popup open and redraws on every pushed result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			c := client.New(a.hostURL(host))
			surface := display.NewSurface(c, c, display.WithLogger(a.logger))
			renderer := display.TextRenderer{}

			ctx := cmd.Context()
			if err := surface.Open(ctx); err != nil {
				return err
			}

			switch {
			case plain:
				if err := surface.SetLearningMode(ctx, false); err != nil {
					return err
				}
			case learning:
				if err := surface.SetLearningMode(ctx, true); err != nil {
					return err
				}
			}

			if err := renderer.Render(a.stdout, surface.View()); err != nil {
				return err
			}
			if !follow {
				return nil
			}

			duration, err := a.cfg.OverlayDuration()
			if err != nil {
				return err
			}
			overlay := display.NewOverlay(duration)
			defer overlay.Dismiss()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			return followHost(ctx, c, surface, overlay, a.redraw(renderer), func(text string) {
				fmt.Fprintf(a.stderr, "» %s\n", text)
			})
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host URL (default from config)")
	cmd.Flags().BoolVar(&plain, "plain", false, "show plain text and remember the choice")
	cmd.Flags().BoolVar(&learning, "learning", false, "show readings and remember the choice")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep running and redraw on new results")
	cmd.MarkFlagsMutuallyExclusive("plain", "learning")
	return cmd
}

// redraw writes each view to stdout. A view that cannot be written is logged
// and the next push draws again.
func (a *app) redraw(r display.Renderer) func(display.View) {
	return func(v display.View) {
		if err := r.Render(a.stdout, v); err != nil {
			a.logger.Error().Err(err).Msg("render popup")
		}
	}
}

// followHost applies pushed messages to surface and overlay until ctx ends.
func followHost(ctx context.Context, c *client.Client, surface *display.Surface, overlay *display.Overlay, draw func(display.View), announce func(string)) error {
	return c.Subscribe(ctx, func(msg furigo.Message) {
		switch {
		case surface.Handle(msg):
			draw(surface.View())
		case overlay.Handle(msg):
			if text, visible := overlay.Message(); visible {
				announce(text)
			}
		case msg.Type == furigo.MessageOpenPopup:
			if err := surface.Open(ctx); err == nil {
				draw(surface.View())
			}
		}
	})
}

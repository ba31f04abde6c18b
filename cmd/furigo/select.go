package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/client"
	"github.com/ZaguanLabs/furigo/display"
	"github.com/spf13/cobra"
)

// hostURL returns --host or the address from the config.
func (a *app) hostURL(host string) string {
	if host != "" {
		return host
	}
	return a.cfg.BaseURL()
}

// waitForResult polls until the host replaces the loading placeholder.
func waitForResult(ctx context.Context, c *client.Client, loading furigo.TranslationResult, interval time.Duration) (furigo.TranslationResult, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := c.GetTranslation(ctx)
		if err != nil {
			return result, err
		}
		if result != loading {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.C:
		}
	}
}

func newSelectCmd(a *app) *cobra.Command {
	var (
		host    string
		to      string
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "select [text...]",
		Short: "Send a selection to a running host as a context-menu click",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			input, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			d, err := resolveDirection(to, strings.TrimSpace(input))
			if err != nil {
				return err
			}

			c := client.New(a.hostURL(host))
			loading, err := c.Click(cmd.Context(), furigo.MenuClick{
				MenuItemID:    furigo.MenuItemForDirection(d),
				SelectionText: input,
			})
			if err != nil {
				return err
			}

			if !wait {
				fmt.Fprintln(a.stdout, loading.PlainText)
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			result, err := waitForResult(ctx, c, loading, 200*time.Millisecond)
			if err != nil {
				return fmt.Errorf("waiting for translation: %w", err)
			}

			surface := display.NewSurface(nil, c)
			if err := surface.Open(cmd.Context()); err != nil {
				return err
			}
			surface.Receive(result)
			if err := (display.TextRenderer{}).Render(a.stdout, surface.View()); err != nil {
				return err
			}
			if result.IsError {
				return errTranslationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host URL (default from config)")
	cmd.Flags().StringVar(&to, "to", "auto", "target language: ja, zh or auto")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the translation and print it")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "how long --wait waits")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/ZaguanLabs/furigo/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgFile)
			}

			if err := config.DefaultConfig().Save(a.cfgFile); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Wrote %s\n", a.cfgFile)
			fmt.Fprintf(a.stdout, "Set %s or edit gemini.api_key before translating.\n", config.APIKeyEnvVar(config.ProviderGemini))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			cfg := *a.cfg
			cfg.Gemini.APIKey = redact(cfg.Gemini.APIKey)
			cfg.OpenAI.APIKey = redact(cfg.OpenAI.APIKey)
			fmt.Fprintf(a.stdout, "provider:    %s\n", cfg.Provider)
			fmt.Fprintf(a.stdout, "gemini:      model=%s key=%s\n", cfg.Gemini.Model, cfg.Gemini.APIKey)
			fmt.Fprintf(a.stdout, "openai:      model=%s key=%s\n", cfg.OpenAI.Model, cfg.OpenAI.APIKey)
			fmt.Fprintf(a.stdout, "server:      %s (overlay=%t %s)\n", cfg.Server.Addr, cfg.Server.Overlay, cfg.Server.OverlayDuration)
			fmt.Fprintf(a.stdout, "store:       %s\n", cfg.Store.Type)
			fmt.Fprintf(a.stdout, "environment: %s (log level %s)\n", cfg.Environment, cfg.LogLevel)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func redact(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

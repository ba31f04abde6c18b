// Command furigo translates selected text between Japanese and Traditional
// Chinese, with furigana reading aids on the Japanese side.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/internal/config"
	"github.com/ZaguanLabs/furigo/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// app carries the state shared by every subcommand.
type app struct {
	cfgFile string
	envFile string
	verbose bool

	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger zerolog.Logger
}

// load reads .env, the config file and the environment, then builds the logger.
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}

	if err := config.LoadEnvFile(a.envFile, a.envFile != ".env"); err != nil {
		return err
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.NewWithWriter(a.stderr, cfg.Environment, level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   furigo.Name,
		Short: furigo.Description,
		Long: `furigo translates selected text between Japanese and Traditional Chinese.
Japanese output carries furigana readings rendered as ruby annotations.

Run "furigo serve" to host the context menu, the popup and the push channel,
or "furigo translate" for a one-shot translation in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVar(&a.envFile, "env", ".env", "path to the .env file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newServeCmd(a),
		newTranslateCmd(a),
		newSelectCmd(a),
		newPopupCmd(a),
		newMenuCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return root
}

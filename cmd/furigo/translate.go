package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/detect"
	"github.com/ZaguanLabs/furigo/display"
	"github.com/ZaguanLabs/furigo/markup"
	"github.com/spf13/cobra"
)

var errTranslationFailed = errors.New("translation failed")

// JSONOutput represents the JSON output format of translate.
type JSONOutput struct {
	Direction    string           `json:"direction"`
	PlainText    string           `json:"plainText"`
	LearningText string           `json:"learningText"`
	IsError      bool             `json:"isError"`
	Readings     []markup.Reading `json:"readings,omitempty"`
}

// resolveDirection turns a --to value into a direction. "auto" inspects text.
func resolveDirection(to, text string) (furigo.Direction, error) {
	if to == "" || strings.EqualFold(to, "auto") {
		return detect.Direction(text), nil
	}
	d, ok := furigo.ParseDirection(to)
	if !ok {
		return 0, fmt.Errorf("unknown target %q: use ja, zh or auto", to)
	}
	return d, nil
}

// readInput joins args, or reads stdin when there are none.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func newTranslateCmd(a *app) *cobra.Command {
	var (
		to         string
		jsonOutput bool
		plain      bool
		learning   bool
	)

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text once and print the result",
		Long: `Translate text given as arguments or on stdin.

Japanese text goes to Traditional Chinese and everything else to Japanese
unless --to says otherwise. Japanese output is printed with readings as
base(reading); --plain prints the text without readings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			input, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			text := strings.TrimSpace(input)
			if text == "" {
				return furigo.ErrEmptySelection
			}

			d, err := resolveDirection(to, text)
			if err != nil {
				return err
			}

			p, err := buildProvider(a.cfg)
			if err != nil {
				return err
			}

			translator := furigo.NewTranslator(p, furigo.WithLogger(a.logger))
			result := furigo.Classify(translator.Translate(cmd.Context(), text, d))

			if jsonOutput {
				if err := outputJSON(a.stdout, d, result); err != nil {
					return err
				}
			} else {
				mode, err := a.learningMode(cmd, plain, learning)
				if err != nil {
					return err
				}
				surface := display.NewSurface(nil, nil)
				if err := surface.SetLearningMode(cmd.Context(), mode); err != nil {
					return err
				}
				surface.Receive(result)
				if err := (display.TextRenderer{}).Render(a.stdout, surface.View()); err != nil {
					return err
				}
			}

			if result.IsError {
				return errTranslationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "auto", "target language: ja, zh or auto")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output result as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without readings")
	cmd.Flags().BoolVar(&learning, "learning", false, "print with readings")
	cmd.MarkFlagsMutuallyExclusive("plain", "learning")
	return cmd
}

// learningMode resolves --plain/--learning, falling back to the stored
// preference.
func (a *app) learningMode(cmd *cobra.Command, plain, learning bool) (bool, error) {
	switch {
	case plain:
		return false, nil
	case learning:
		return true, nil
	}

	prefs, closeStore, err := buildStore(a.cfg)
	if err != nil {
		return false, err
	}
	defer closeStore()

	pref, err := prefs.LoadPreference(cmd.Context())
	if err != nil {
		a.logger.Warn().Err(err).Msg("preference unavailable, using default")
		return furigo.DefaultPreference().LearningMode, nil
	}
	return pref.LearningMode, nil
}

func outputJSON(w io.Writer, d furigo.Direction, result furigo.TranslationResult) error {
	out := JSONOutput{
		Direction:    d.String(),
		PlainText:    result.PlainText,
		LearningText: result.LearningText,
		IsError:      result.IsError,
	}

	readings, err := markup.Readings(result.LearningText)
	if err != nil {
		return err
	}
	out.Readings = readings

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

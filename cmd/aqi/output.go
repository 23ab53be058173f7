package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/purpleair-aqi/internal/domain"
	"github.com/couchcryptid/purpleair-aqi/internal/render"
	"github.com/spf13/cobra"
)

// outputFlags are shared by every command that prints a reading.
type outputFlags struct {
	dark   bool
	light  bool
	asJSON bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.dark, "dark", false, "use dark appearance colors")
	cmd.Flags().BoolVar(&o.light, "light", false, "use light appearance colors")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the reading as JSON")
	cmd.MarkFlagsMutuallyExclusive("dark", "light")
}

// darkAppearance resolves --dark/--light, falling back to the terminal background.
func (o *outputFlags) darkAppearance() bool {
	switch {
	case o.dark:
		return true
	case o.light:
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

func (o *outputFlags) write(cmd *cobra.Command, result domain.PresentationResult) error {
	out := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, render.Widget(result, render.Options{Dark: o.darkAppearance()}))
	if result.SensorID != "" {
		fmt.Fprintln(out, render.SubtleStyle.Render(result.MapURL))
	}
	return nil
}

// fail shows err in place of the widget and marks it reported.
func (o *outputFlags) fail(cmd *cobra.Command, err error) error {
	if o.asJSON {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Fallback(err))
	return fmt.Errorf("%w: %w", errReported, err)
}

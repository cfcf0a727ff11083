//go:build fyne

package main

import (
	"github.com/spf13/cobra"

	"github.com/esteban/piano/internal/ui"
)

func init() {
	subcommands = append(subcommands, newSettingsCmd)
}

func newSettingsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Edit the saved preferences in a window",
		Long: "Opens a Fyne window that edits the preference file the piano " +
			"reads at startup. Fyne and the game window both need the main " +
			"thread, so the panel runs as its own command.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, logger, err := openStore(*opts)
			if err != nil {
				return err
			}
			ui.RunSettingsPanel(store, logger)
			return nil
		},
	}
}

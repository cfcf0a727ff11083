package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/esteban/piano/core/engine"
	"github.com/esteban/piano/core/prefs"
	"github.com/esteban/piano/internal/audio"
	"github.com/esteban/piano/internal/config"
	game_log "github.com/esteban/piano/internal/log"
	"github.com/esteban/piano/internal/ui"
)

type options struct {
	prefsPath string
	samples   string
	logLevel  string
	width     int
	height    int
	octaves   string
	rows      string
	damper    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "piano",
		Short:        "Two-octave multi-touch piano",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/piano/prefs.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn, error or none")
	f := cmd.Flags()
	f.StringVar(&opts.samples, "samples", "", "directory holding note0.wav .. note35.wav")
	f.IntVar(&opts.width, "width", 960, "window width")
	f.IntVar(&opts.height, "height", 400, "window height")
	f.StringVar(&opts.octaves, "octaves", "", "octave range: low, mid or high")
	f.StringVar(&opts.rows, "rows", "", "row order: lower-row-higher-octave or lower-row-lower-octave")
	f.StringVar(&opts.damper, "damper", "", "sustain or dampen")
	for _, sub := range subcommands {
		cmd.AddCommand(sub(&opts))
	}
	return cmd
}

// subcommands are added by optional build tags.
var subcommands []func(opts *options) *cobra.Command

func openStore(opts options) (*config.Store, *game_log.Logger, error) {
	logger := game_log.New(os.Stderr, game_log.LevelFromString(opts.logLevel))
	path := opts.prefsPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Warnf("no home directory, preferences are not saved: %v", err)
		}
		path = p
	}
	store, err := config.Open(path, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, logger, nil
}

func run(cmd *cobra.Command, opts options) error {
	store, logger, err := openStore(opts)
	if err != nil {
		return err
	}
	for name, flag := range map[string]string{
		prefs.NameOctaves: "octaves",
		prefs.NameRows:    "rows",
		prefs.NameDamper:  "damper",
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, _ := cmd.Flags().GetString(flag)
		if err := store.Set(name, v); err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
	}

	var bank audio.Bank = audio.SynthBank{}
	dir := opts.samples
	if dir == "" {
		dir = store.SampleDir()
	}
	if dir != "" {
		if dir, err = homedir.Expand(dir); err != nil {
			return err
		}
		b, err := audio.NewDirBank(dir)
		if err != nil {
			return err
		}
		bank = b
	}
	mixer := audio.NewMixer(bank, logger)
	if err := mixer.Start(); err != nil {
		return err
	}
	defer mixer.Close()

	ebiten.SetWindowSize(opts.width, opts.height)
	piano := engine.New(mixer, store.Preferences(), logger)
	defer piano.Close()
	g := ui.New(piano, store, mixer, logger)

	ebiten.SetWindowTitle("Piano")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

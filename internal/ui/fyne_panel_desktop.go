//go:build fyne

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/esteban/piano/core/prefs"
	"github.com/esteban/piano/internal/audio"
	"github.com/esteban/piano/internal/config"
	game_log "github.com/esteban/piano/internal/log"
)

// RunSettingsPanel shows the preferences in a Fyne window and saves every
// change to store. It blocks until the window closes and must run on the
// main goroutine, so it is a separate mode from the game window.
func RunSettingsPanel(store *config.Store, logger *game_log.Logger) {
	logger = logger.Named("PANEL")
	a := app.New()
	w := a.NewWindow("Piano settings")

	cur := store.Preferences()
	rows := []fyne.CanvasObject{}
	for _, name := range prefs.Names {
		name := name
		sel := widget.NewSelect(prefs.Choices(name), func(v string) {
			if err := store.Set(name, v); err != nil {
				logger.Errorf("set %s=%s: %v", name, v, err)
			}
		})
		sel.SetSelected(cur.Get(name))
		rows = append(rows, widget.NewLabel(name), sel)
	}

	dirLabel := widget.NewLabel(store.SampleDir())
	samplesBtn := widget.NewButton("Sample directory", func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			if _, err := audio.NewDirBank(uri.Path()); err != nil {
				dialog.ShowError(err, w)
				return
			}
			if err := store.SetSampleDir(uri.Path()); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dirLabel.SetText(uri.Path())
		}, w)
		fd.Show()
	})
	rows = append(rows, samplesBtn, dirLabel)

	w.SetContent(container.NewVBox(rows...))
	w.ShowAndRun()
}

//go:build !test && !js

package ui

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
	"github.com/sqweek/dialog"

	"github.com/esteban/piano/core/prefs"
)

var prefLabels = map[string]string{
	prefs.NameOctaves:     "Octaves",
	prefs.NameRows:        "Row order",
	prefs.NameDamper:      "Damper",
	prefs.NameOrientation: "Orientation",
}

// showSettings lets the user pick a preference and then its new value.
var showSettings = func(g *Game) {
	cur := g.store.Preferences()
	items := make([]string, len(prefs.Names))
	for i, name := range prefs.Names {
		items[i] = fmt.Sprintf("%s: %s", prefLabels[name], cur.Get(name))
	}
	picked, err := zenity.List("Settings", items, zenity.Title("Piano settings"))
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.logger.Errorf("settings menu: %v", err)
		}
		return
	}
	for i, item := range items {
		if item != picked {
			continue
		}
		name := prefs.Names[i]
		val, err := zenity.List(prefLabels[name], prefs.Choices(name),
			zenity.Title(prefLabels[name]), zenity.DefaultItems(cur.Get(name)))
		if err != nil {
			return
		}
		g.set(name, val)
		return
	}
}

var pickSampleDir = func() (string, error) {
	dir, err := dialog.Directory().Title("Sample directory (note0.wav .. note35.wav)").Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errors.New("cancelled")
	}
	return dir, err
}

//go:build test || js

package ui

import "errors"

var showSettings = func(g *Game) {
	g.logger.Infof("settings menu unavailable")
}

var pickSampleDir = func() (string, error) {
	return "", errors.New("no directory picker")
}

//go:build fyne

package main

import "testing"

func TestSettingsCommandRegistered(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"settings"})
	if err != nil || cmd == root {
		t.Fatalf("settings command not found: %v", err)
	}
	if f := cmd.InheritedFlags().Lookup("prefs"); f == nil {
		t.Fatalf("settings does not inherit --prefs")
	}
}

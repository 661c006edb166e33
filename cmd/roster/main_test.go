package main

import (
	"slices"
	"testing"

	"github.com/matsen/roster/internal/config"
)

func TestPreloadFiles(t *testing.T) {
	defer func() {
		loadFiles = nil
		noAutoload = false
	}()

	cfg := &config.Config{Autoload: []string{"a.csv", "b.csv"}}
	loadFiles = []string{"c.csv"}

	noAutoload = false
	if got := preloadFiles(cfg); !slices.Equal(got, []string{"a.csv", "b.csv", "c.csv"}) {
		t.Errorf("preloadFiles() = %v, want [a.csv b.csv c.csv]", got)
	}
	if len(cfg.Autoload) != 2 {
		t.Errorf("preloadFiles() modified config autoload: %v", cfg.Autoload)
	}

	noAutoload = true
	if got := preloadFiles(cfg); !slices.Equal(got, []string{"c.csv"}) {
		t.Errorf("preloadFiles() with --no-autoload = %v, want [c.csv]", got)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"index", "query", "config"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("rootCmd.Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

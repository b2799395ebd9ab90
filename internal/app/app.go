package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hypoth-org/hypoth-ui-sub001/internal/gallery"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/source"
)

// Config describes user-provided application options.
type Config struct {
	Screen     string
	Width      int
	Height     int
	LatencyMS  int
	DebounceMS int
	Verbose    bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	dir := source.NewDirectory(time.Duration(cfg.LatencyMS) * time.Millisecond)
	watcher := source.NewWatcher(dir, 1500*time.Millisecond, 10)
	defer watcher.Stop()

	model := gallery.NewModel(gallery.Options{
		Screen:    cfg.Screen,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Debounce:  time.Duration(cfg.DebounceMS) * time.Millisecond,
		Directory: dir,
		Watcher:   watcher,
		Verbose:   cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

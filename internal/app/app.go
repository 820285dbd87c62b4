package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hwpanel/menunav/internal/demo"
	"github.com/hwpanel/menunav/internal/engine"
	"github.com/hwpanel/menunav/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Width        int
	Height       int
	ShowFooter   bool
	Surroundings bool
	Verbose      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	content := demo.New()
	defer content.Stop()

	bridge := ui.NewBridge(engine.Config{RenderSurroundings: cfg.Surroundings})
	defer bridge.Stop()
	bridge.SetRoot(content.Root())

	model := ui.NewModel(bridge, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

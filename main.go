package main

import (
	"fmt"
	"os"

	"github.com/hwpanel/menunav/internal/app"
	"github.com/hwpanel/menunav/internal/config"
	"github.com/hwpanel/menunav/internal/logging"
	"github.com/hwpanel/menunav/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": cfg.Flags,
	}
	if tty := detectTTY(); tty != nil {
		payload["tty"] = tty
	}
	events.App.Start(payload)
}

// detectTTY reports the first standard descriptor that is a terminal, with
// its size. The simulator sizes its viewport from this unless width/height
// flags override it.
func detectTTY() map[string]interface{} {
	for _, probe := range []struct {
		name string
		fd   int
	}{
		{"stdout", int(os.Stdout.Fd())},
		{"stdin", int(os.Stdin.Fd())},
	} {
		if !term.IsTerminal(probe.fd) {
			continue
		}
		tty := map[string]interface{}{"source": probe.name}
		if width, height, err := term.GetSize(probe.fd); err == nil {
			tty["width"] = width
			tty["height"] = height
		}
		return tty
	}
	return nil
}

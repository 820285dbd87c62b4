package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected auto dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled by default")
	}
	if cfg.App.Surroundings || cfg.Logging.Trace || cfg.Features.Verbose {
		t.Fatalf("expected surroundings/trace/verbose off by default")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := []string{"MENUNAV_WIDTH=30", "MENUNAV_TRACE=1"}
	cfg, err := LoadArgs([]string{"-width", "64", "-surroundings"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 64 {
		t.Fatalf("expected flag to win, got %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from environment")
	}
	if !cfg.App.Surroundings {
		t.Fatalf("expected surroundings enabled")
	}
}

func TestNegativeDimensionsRejected(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-2"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestMalformedEnvFallsBack(t *testing.T) {
	env := []string{"MENUNAV_WIDTH=wide", "MENUNAV_FOOTER=maybe"}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 || !cfg.App.ShowFooter {
		t.Fatalf("expected fallbacks, got width=%d footer=%v", cfg.App.Width, cfg.App.ShowFooter)
	}
}

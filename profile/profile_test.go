package profile

import (
	"slices"
	"testing"
)

func TestConfig_Options(t *testing.T) {
	var cfg Config

	cfg = WithMode("cpu")(cfg)
	cfg = WithPath("/tmp/ilc")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()
	if mode != "cpu" || path != "/tmp/ilc" || !quiet {
		t.Errorf("Config() = %q, %q, %v", mode, path, quiet)
	}

	cfg = WithMode("heap")(cfg)
	if mode, path, _ = cfg(); mode != "heap" || path != "/tmp/ilc" {
		t.Errorf("WithMode overwrote path: %q, %q", mode, path)
	}
}

func TestConfig_Start_NoMode(t *testing.T) {
	var nilCfg Config

	nilCfg.Start().Stop()

	cfg := WithPath(t.TempDir())(nil)
	if _, ok := cfg.Start().(ignore); !ok {
		t.Error("Start without a mode should be a no-op")
	}
}

func TestConfig_Start_UnknownMode(t *testing.T) {
	cfg := WithMode("bogus")(WithPath(t.TempDir())(nil))

	ctrl := cfg.Start()
	defer ctrl.Stop()

	if _, ok := ctrl.(ignore); !ok {
		t.Error("Start with an unknown mode should be a no-op")
	}
}

func TestModes_Sorted(t *testing.T) {
	if modes := Modes(); !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}
}

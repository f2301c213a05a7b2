package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/vi-racer/catalog"
	"github.com/lixenwraith/vi-racer/constants"
)

var allVars = []string{
	"VI_RACER_VEHICLE", "VI_RACER_THEME", "VI_RACER_CAMERA", "VI_RACER_COLOR", "VI_RACER_LAPS",
	"VI_RACER_SEED", "VI_RACER_WAGER", "VI_RACER_POT", "VI_RACER_LOBBY_ADDR", "VI_RACER_DEBUG",
	"VI_RACER_GEMINI_API_KEY", "GEMINI_API_KEY", "VI_RACER_GEMINI_MODEL", "VI_RACER_ADVISORY_TIMEOUT",
}

// isolateEnv runs the test in an empty directory with every config variable unset
// t.Setenv records the original value so cleanup restores it after the unset
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load without .env failed: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Errorf("Expected defaults\n got  %+v\n want %+v", cfg, def)
	}
	if cfg.VehicleID != catalog.DefaultVehicleID || cfg.LapTarget != constants.DefaultLapTarget {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("VI_RACER_VEHICLE", "s3")
	t.Setenv("VI_RACER_THEME", "SPACE")
	t.Setenv("VI_RACER_LAPS", "5")
	t.Setenv("VI_RACER_SEED", "42")
	t.Setenv("VI_RACER_WAGER", "2.5")
	t.Setenv("VI_RACER_POT", "-10")
	t.Setenv("VI_RACER_DEBUG", "true")
	t.Setenv("VI_RACER_GEMINI_API_KEY", "prefixed")
	t.Setenv("GEMINI_API_KEY", "plain")
	t.Setenv("VI_RACER_ADVISORY_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VehicleID != "s3" || cfg.Theme != "SPACE" || cfg.LapTarget != 5 || cfg.Seed != 42 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.Wager != 2.5 || cfg.Pot != 0 {
		t.Errorf("Wager/pot = %.2f/%.2f, want 2.5/0", cfg.Wager, cfg.Pot)
	}
	if !cfg.Debug {
		t.Error("Debug not enabled")
	}
	if cfg.GeminiAPIKey != "plain" {
		t.Errorf("GEMINI_API_KEY should win, got %q", cfg.GeminiAPIKey)
	}
	if cfg.AdvisoryTimeout != 2*time.Second {
		t.Errorf("AdvisoryTimeout = %v", cfg.AdvisoryTimeout)
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	isolateEnv(t)
	t.Setenv("VI_RACER_LAPS", "many")
	t.Setenv("VI_RACER_SEED", "-1")
	t.Setenv("VI_RACER_ADVISORY_TIMEOUT", "soon")
	t.Setenv("VI_RACER_DEBUG", "perhaps")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.LapTarget != def.LapTarget || cfg.Seed != 0 || cfg.AdvisoryTimeout != def.AdvisoryTimeout || cfg.Debug {
		t.Errorf("Unparseable values should keep defaults: %+v", cfg)
	}
}

func TestLoadClampsLaps(t *testing.T) {
	isolateEnv(t)
	t.Setenv("VI_RACER_LAPS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LapTarget != 1 {
		t.Errorf("Lap target should clamp to 1, got %d", cfg.LapTarget)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolateEnv(t)
	content := "VI_RACER_VEHICLE=d3\nVI_RACER_CAMERA=DRONE\nGEMINI_API_KEY=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with .env failed: %v", err)
	}
	if cfg.VehicleID != "d3" || cfg.Camera != "DRONE" || cfg.GeminiAPIKey != "from-file" {
		t.Errorf(".env values not applied: %+v", cfg)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("VI_RACER_VEHICLE", "s1")
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("VI_RACER_VEHICLE=d3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VehicleID != "s1" {
		t.Errorf("Process environment should win over .env, got %q", cfg.VehicleID)
	}
}

func TestValidate(t *testing.T) {
	cat, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}

	if err := Default().Validate(cat); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}

	bad := Default()
	bad.VehicleID = "hovercraft"
	bad.Theme = "LAVA"
	bad.Camera = "HELI"
	bad.ColorMode = "sepia"
	err = bad.Validate(cat)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
	for _, want := range []string{"hovercraft", "LAVA", "HELI", "sepia"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error should mention %q: %v", want, err)
		}
	}
}

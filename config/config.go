package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/vi-racer/catalog"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/render"
)

// EnvFile is the optional dotenv file read before the environment
const EnvFile = ".env"

var ErrInvalid = errors.New("invalid configuration")

// Config holds runtime settings for one process
type Config struct {
	VehicleID string
	Theme     string
	Camera    string
	ColorMode string // auto, truecolor, 256
	LapTarget int
	Seed      uint64 // 0 derives a seed from the clock at session start
	Wager     float64
	Pot       float64
	LobbyAddr string // Empty disables the lobby feed
	Debug     bool

	GeminiAPIKey    string // Empty runs without the advisory collaborator
	GeminiModel     string
	AdvisoryTimeout time.Duration
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		VehicleID:       catalog.DefaultVehicleID,
		Theme:           render.DefaultThemeName,
		Camera:          render.CameraChase.String(),
		ColorMode:       "auto",
		LapTarget:       constants.DefaultLapTarget,
		AdvisoryTimeout: constants.AdvisoryTimeout,
	}
}

// Load returns defaults overridden by .env and VI_RACER_* variables
// A missing .env is not an error; unparseable values keep their defaults
func Load() (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", EnvFile, err)
	}

	cfg := Default()

	if v := os.Getenv("VI_RACER_VEHICLE"); v != "" {
		cfg.VehicleID = v
	}
	if v := os.Getenv("VI_RACER_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("VI_RACER_CAMERA"); v != "" {
		cfg.Camera = v
	}
	if v := os.Getenv("VI_RACER_COLOR"); v != "" {
		cfg.ColorMode = v
	}
	if v := os.Getenv("VI_RACER_LAPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LapTarget = n
		}
	}
	if v := os.Getenv("VI_RACER_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("VI_RACER_WAGER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Wager = f
		}
	}
	if v := os.Getenv("VI_RACER_POT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Pot = f
		}
	}
	if v := os.Getenv("VI_RACER_LOBBY_ADDR"); v != "" {
		cfg.LobbyAddr = v
	}
	if v := os.Getenv("VI_RACER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	// The conventional variable wins over the prefixed one
	cfg.GeminiAPIKey = os.Getenv("VI_RACER_GEMINI_API_KEY")
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("VI_RACER_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("VI_RACER_ADVISORY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AdvisoryTimeout = d
		}
	}

	cfg.clamp()
	return cfg, nil
}

// clamp forces numeric settings into their usable ranges
func (c *Config) clamp() {
	if c.LapTarget < 1 {
		c.LapTarget = 1
	}
	if c.Wager < 0 {
		c.Wager = 0
	}
	if c.Pot < 0 {
		c.Pot = 0
	}
	if c.AdvisoryTimeout <= 0 {
		c.AdvisoryTimeout = constants.AdvisoryTimeout
	}
}

// Validate checks names against the catalog, themes and camera modes
func (c *Config) Validate(cat *catalog.Catalog) error {
	c.clamp()

	var problems []string
	if _, err := cat.Lookup(c.VehicleID); err != nil {
		problems = append(problems, err.Error())
	}
	if _, ok := render.LookupTheme(c.Theme); !ok {
		problems = append(problems, fmt.Sprintf("unknown theme %q (have %s)", c.Theme, strings.Join(render.ThemeNames(), ", ")))
	}
	if _, ok := render.ParseCameraMode(c.Camera); !ok {
		problems = append(problems, fmt.Sprintf("unknown camera %q", c.Camera))
	}
	switch c.ColorMode {
	case "auto", "truecolor", "true", "24bit", "256":
	default:
		problems = append(problems, fmt.Sprintf("unknown color mode %q", c.ColorMode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

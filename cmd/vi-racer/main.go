package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/advisor"
	"github.com/lixenwraith/vi-racer/audio"
	"github.com/lixenwraith/vi-racer/catalog"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/game"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/lobby"
	"github.com/lixenwraith/vi-racer/render"
)

var (
	colorModeFlag = flag.String("color", "", "Color mode: auto, truecolor, 256")
	cameraFlag    = flag.String("camera", "", "Initial camera: CHASE, DRIVER, DRONE, OVERHEAD, CINEMATIC")
	vehicleFlag   = flag.String("vehicle", "", "Vehicle id from the catalog")
	themeFlag     = flag.String("theme", "", "Theme: RACING, SPACE, WATER, HORSE, FLIGHT, FANTASY")
	seedFlag      = flag.Uint64("seed", 0, "Random seed, 0 picks one per race")
	debugFlag     = flag.Bool("debug", false, "Write debug logs to logs/vi-racer.log")
	lobbyFlag     = flag.String("lobby", "", "Serve the lobby feed on this address (e.g. :8090)")
	wagerFlag     = flag.Float64("wager", -1, "Wager reported with the session result")
	potFlag       = flag.Float64("pot", -1, "Pot reported with the session result")
	lapsFlag      = flag.Int("laps", 0, "Laps to win")
	listFlag      = flag.Bool("list", false, "List vehicles and themes, then exit")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cat, err := catalog.Builtin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Vehicle catalog: %v\n", err)
		os.Exit(1)
	}
	if *listFlag {
		printCatalog(cat)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(cat); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	vehicle, _ := cat.Lookup(cfg.VehicleID)
	theme, _ := render.LookupTheme(cfg.Theme)
	camera, _ := render.ParseCameraMode(cfg.Camera)

	applyColorMode(cfg.ColorMode)
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashScreen(screen)
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()

	// Audio is optional
	sound := audio.NewSoundManager(audio.LoadConfig())
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", "err", err)
	}
	core.OnCrash(sound.Cleanup)
	defer sound.Cleanup()

	opts := game.Options{
		Vehicle:         vehicle,
		Theme:           theme,
		Camera:          camera,
		LapTarget:       cfg.LapTarget,
		Wager:           cfg.Wager,
		Pot:             cfg.Pot,
		Seed:            cfg.Seed,
		Advisor:         newAdvisor(cfg),
		AdvisoryTimeout: cfg.AdvisoryTimeout,
		Sound:           sound,
		OnResult: func(res engine.SessionResult) {
			log.Info("session result", "id", res.SessionID, "score", res.Score, "win", res.IsWin,
				"wager", res.Wager, "pot", res.Pot)
		},
	}

	if cfg.LobbyAddr != "" {
		hub := lobby.NewHub()
		srv, err := lobby.Listen(cfg.LobbyAddr, hub)
		if err != nil {
			log.Warn("lobby feed disabled", "addr", cfg.LobbyAddr, "err", err)
		} else {
			opts.Feed = hub
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				srv.Close(ctx)
			}()
		}
	}

	g := game.New(engine.NewMonotonicTimeProvider(), opts)
	defer g.Stop()

	renderer := render.NewTerminalRenderer(screen)

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// Clean exit on screen closure
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.HandleAction(input.MapKey(ev)) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frameTicker.C:
			g.IdleTick()
			renderer.RenderFrame(g.Frame())
		}
	}
}

// applyFlags layers explicitly set flags over the loaded configuration
func applyFlags(cfg *config.Config) {
	if *colorModeFlag != "" {
		cfg.ColorMode = *colorModeFlag
	}
	if *cameraFlag != "" {
		cfg.Camera = *cameraFlag
	}
	if *vehicleFlag != "" {
		cfg.VehicleID = *vehicleFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *lobbyFlag != "" {
		cfg.LobbyAddr = *lobbyFlag
	}
	if *wagerFlag >= 0 {
		cfg.Wager = *wagerFlag
	}
	if *potFlag >= 0 {
		cfg.Pot = *potFlag
	}
	if *lapsFlag > 0 {
		cfg.LapTarget = *lapsFlag
	}
}

// applyColorMode steers tcell's color detection before the screen is created
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

// newAdvisor returns the Gemini collaborator when a key is configured
func newAdvisor(cfg *config.Config) advisor.Advisor {
	if cfg.GeminiAPIKey == "" {
		log.Info("no advisor key, running without commentary")
		return advisor.Nop{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.AdvisoryTimeout)
	defer cancel()
	gm, err := advisor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn("advisor unavailable", "err", err)
		return advisor.Nop{}
	}
	return gm
}

func printCatalog(cat *catalog.Catalog) {
	fmt.Println("Vehicles:")
	for _, v := range cat.All() {
		boost := ""
		if v.AutoBoost {
			boost = " auto-boost"
		}
		fmt.Printf("  %-4s %-22s %-10s nitro %.1f%s\n", v.ID, v.Name, v.Category, v.NitroPower, boost)
	}
	fmt.Println("Themes:")
	for _, name := range render.ThemeNames() {
		fmt.Printf("  %s\n", name)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Printf("Build: %s\n", info.Main.Version)
	}
}

package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// rowText reads one screen row as a string
func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func screenText(screen tcell.Screen) string {
	_, h := screen.Size()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		rows[y] = rowText(screen, y)
	}
	return strings.Join(rows, "\n")
}

func playingFrame(now time.Time) *Frame {
	spec := components.VehicleSpec{ID: "f1", Name: "Formula", NitroPower: 1, Color: "#ef4444"}
	state := engine.NewSimulationState(spec, 3, now)
	state.Racing = true
	state.RaceStart = now
	state.Score = 42
	state.Obstacles = append(state.Obstacles, components.Obstacle{
		ID: 1, Kind: components.ObstacleBarrier, X: 160, Y: 200, W: 80, H: 30, Damage: 40, Lane: 1,
	})
	state.Particles = append(state.Particles, components.Particle{X: 200, Y: 400, Life: 0.5, Color: tcell.ColorWhite, Kind: components.ParticleSpark})
	snap := state.Snapshot(now.Add(1500 * time.Millisecond))

	return &Frame{
		HUD: engine.HUDSnapshot{
			Phase:      engine.PhasePlaying,
			Score:      42,
			Health:     75,
			Speed:      12,
			Grip:       1,
			Laps:       0,
			LapTarget:  3,
			Elapsed:    snap.Elapsed,
			Countdown:  -1,
			Commentary: "Lights out and away we go",
		},
		Sim:    &snap,
		Theme:  DefaultTheme(),
		Camera: CameraChase,
	}
}

func TestRenderPlayingHUD(t *testing.T) {
	screen := newTestScreen(t, 100, 40)
	r := NewTerminalRenderer(screen)

	r.RenderFrame(playingFrame(time.Unix(1000, 0)))

	top := rowText(screen, 0)
	if !strings.Contains(top, "SCORE 00042") {
		t.Errorf("Score readout missing from top row: %q", top)
	}
	if !strings.Contains(top, " 75") {
		t.Errorf("Health value missing from top row: %q", top)
	}

	second := rowText(screen, 1)
	for _, want := range []string{"LAP 0/3", "00:01:50", "GRIP 100%"} {
		if !strings.Contains(second, want) {
			t.Errorf("Second HUD row missing %q: %q", want, second)
		}
	}

	commentary := rowText(screen, 40-constants.HUDBottomRows)
	if !strings.Contains(commentary, "Lights out") {
		t.Errorf("Commentary row missing text: %q", commentary)
	}
}

func TestRenderDrawsVehicleAndObstacle(t *testing.T) {
	screen := newTestScreen(t, 100, 40)
	r := NewTerminalRenderer(screen)
	f := playingFrame(time.Unix(1000, 0))

	r.RenderFrame(f)

	text := screenText(screen)
	if !strings.ContainsRune(text, f.Theme.Vehicle) {
		t.Error("Vehicle glyph not drawn")
	}
	if !strings.ContainsRune(text, f.Theme.ObstacleGlyph(components.ObstacleBarrier)) {
		t.Error("Barrier glyph not drawn")
	}
}

func TestRenderOverlays(t *testing.T) {
	now := time.Unix(1000, 0)

	tests := []struct {
		name string
		edit func(f *Frame)
		want string
	}{
		{"Idle", func(f *Frame) { f.HUD.Phase = engine.PhaseIdle; f.Sim = nil; f.Vehicle = "Formula" }, "Press ENTER to start"},
		{"Countdown", func(f *Frame) { f.HUD.Countdown = 2 }, "2"},
		{"Win", func(f *Frame) { f.HUD.Phase = engine.PhaseGameOver; f.HUD.Outcome = engine.OutcomeWin }, "FINISH!"},
		{"Loss", func(f *Frame) { f.HUD.Phase = engine.PhaseGameOver; f.HUD.Outcome = engine.OutcomeLoss }, "WRECKED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newTestScreen(t, 100, 40)
			r := NewTerminalRenderer(screen)
			f := playingFrame(now)
			tt.edit(f)

			r.RenderFrame(f)

			found := false
			for y := constants.HUDTopRows; y < 40-constants.HUDBottomRows; y++ {
				if strings.Contains(rowText(screen, y), tt.want) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Overlay text %q not found", tt.want)
			}
		})
	}
}

func TestRenderTinyScreen(t *testing.T) {
	screen := newTestScreen(t, 10, 3)
	r := NewTerminalRenderer(screen)

	// Must not panic when the track area collapses
	r.RenderFrame(playingFrame(time.Unix(1000, 0)))
}

func TestTrackViewportAspect(t *testing.T) {
	screen := newTestScreen(t, 200, 44)
	r := NewTerminalRenderer(screen)

	view := r.TrackViewport()
	if view.Y != constants.HUDTopRows {
		t.Errorf("Viewport should start below the HUD, got Y=%d", view.Y)
	}
	if view.H != 44-constants.HUDTopRows-constants.HUDBottomRows {
		t.Errorf("Viewport height = %d", view.H)
	}
	if view.W >= 200 || view.X <= 0 {
		t.Errorf("Wide screen should center a narrower track, got %+v", view)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Second, "00:00:00"},
		{1500 * time.Millisecond, "00:01:50"},
		{83*time.Second + 456*time.Millisecond, "01:23:45"},
		{10 * time.Minute, "10:00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := FormatScore(7); got != "00007" {
		t.Errorf("FormatScore(7) = %q", got)
	}
	if got := FormatScore(123456); got != "123456" {
		t.Errorf("FormatScore(123456) = %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10); got != "short" {
		t.Errorf("Short text changed: %q", got)
	}
	got := TruncateText("a very long line of race commentary", 12)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Truncated text should end with ellipsis: %q", got)
	}
	if n := len([]rune(got)); n > 12 {
		t.Errorf("Truncated text too wide: %d runes", n)
	}
	if got := TruncateText("anything", 0); got != "" {
		t.Errorf("Zero width should give empty string, got %q", got)
	}
}

func TestLaneDashScrolls(t *testing.T) {
	if laneDashVisible(10, 0) == laneDashVisible(10, laneDashLength) {
		t.Error("Shifting distance by a dash length should toggle the dash")
	}
	if laneDashVisible(-10, 0) != laneDashVisible(-10+laneDashPeriod, 0) {
		t.Error("Dash pattern should repeat every period, including negative y")
	}
}

package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-racer/components"
	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

const (
	laneDashPeriod = 60.0 // World units per dash+gap
	laneDashLength = 30.0
	speedReadout   = 10.0 // Speed units to km/h on the HUD
)

var particleGlyphs = map[components.ParticleKind]rune{
	components.ParticleSpark:  '*',
	components.ParticleSmoke:  '░',
	components.ParticleFire:   '▒',
	components.ParticleDebris: '·',
	components.ParticleBoost:  '≈',
	components.ParticleStar:   '.',
	components.ParticleBubble: 'o',
	components.ParticleDirt:   ',',
	components.ParticleCloud:  '~',
	components.ParticleMagic:  '✧',
}

var rotorGlyphs = [4]rune{'|', '/', '─', '\\'}

// Frame is everything one draw needs; the renderer keeps no game state between frames
type Frame struct {
	HUD     engine.HUDSnapshot
	Sim     *engine.Snapshot // Nil before the first session
	Theme   Theme
	Camera  CameraMode
	Vehicle string // Selected vehicle name for the idle screen
	Muted   bool
}

// TerminalRenderer draws frames onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer for the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// RenderFrame draws the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(f *Frame) {
	r.width, r.height = r.screen.Size()
	r.screen.Clear()

	bg := tcell.StyleDefault.Background(f.Theme.Background).Foreground(RgbHUDText)
	r.fill(0, 0, r.width, r.height, ' ', bg)

	if f.Sim != nil {
		view := r.TrackViewport()
		tr := NewTransform(f.Camera, f.Sim.Vehicle, f.Sim.Shake, f.Sim.Frame, view)
		r.drawTrack(f, tr)
		r.drawObstacles(f, tr)
		r.drawParticles(f, tr)
		r.drawVehicle(f, tr)
		r.drawTexts(f, tr)
	}

	r.drawHUD(f)
	r.drawStatus(f)

	switch f.HUD.Phase {
	case engine.PhaseIdle:
		r.drawIdleOverlay(f)
	case engine.PhasePlaying:
		if f.HUD.Countdown > 0 {
			r.drawCenteredLines([]string{fmt.Sprintf("%d", f.HUD.Countdown)},
				tcell.StyleDefault.Background(f.Theme.Background).Foreground(RgbScore).Bold(true))
		}
	case engine.PhaseGameOver:
		r.drawGameOverOverlay(f)
	}

	r.screen.Show()
}

// TrackViewport returns the screen region between the HUD rows, keeping the track's aspect
func (r *TerminalRenderer) TrackViewport() Viewport {
	h := r.height - constants.HUDTopRows - constants.HUDBottomRows
	if h < 1 {
		h = 1
	}
	// Cells are about twice as tall as wide
	w := int(float64(h) * constants.TrackWidth / constants.TrackHeight * 2)
	if w > r.width || w < 1 {
		w = r.width
	}
	return Viewport{X: (r.width - w) / 2, Y: constants.HUDTopRows, W: w, H: h}
}

// drawTrack paints the road, edges and scrolling lane dashes
func (r *TerminalRenderer) drawTrack(f *Frame, tr Transform) {
	theme := f.Theme
	roadStyle := tcell.StyleDefault.Background(theme.Road).Foreground(theme.Line)
	edgeStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Line)
	lanes := [...]float64{constants.TrackWidth / 3, constants.TrackWidth / 3 * 2}
	halfCell := 0.5 / tr.scaleX

	for row := tr.view.Y; row < tr.view.Y+tr.view.H; row++ {
		for col := tr.view.X; col < tr.view.X+tr.view.W; col++ {
			x, y := tr.Unproject(col, row)
			if x < 0 || x >= constants.TrackWidth {
				continue
			}
			if !theme.OpenRoad {
				if x < 2*halfCell || x >= constants.TrackWidth-2*halfCell {
					r.screen.SetContent(col, row, '▐', nil, edgeStyle)
					continue
				}
				r.screen.SetContent(col, row, ' ', nil, roadStyle)
			}
			for _, lx := range lanes {
				if math.Abs(x-lx) <= halfCell && laneDashVisible(y, f.Sim.Distance) {
					r.screen.SetContent(col, row, '│', nil, roadStyle)
				}
			}
		}
	}
}

// laneDashVisible reports whether world y falls on a dash; dashes scroll with distance
func laneDashVisible(y, distance float64) bool {
	m := math.Mod(y-distance, laneDashPeriod)
	if m < 0 {
		m += laneDashPeriod
	}
	return m < laneDashLength
}

func (r *TerminalRenderer) drawObstacles(f *Frame, tr Transform) {
	for _, o := range f.Sim.Obstacles {
		glyph := f.Theme.ObstacleGlyph(o.Kind)
		if o.Kind == components.ObstacleRotating {
			glyph = rotorGlyphs[rotorIndex(o.Rotation)]
		}
		style := tcell.StyleDefault.Background(f.Theme.Road).Foreground(obstacleColor(o.Kind))
		col, row, w, h := tr.ProjectRect(o.Bounds())
		r.fillClipped(tr, col, row, w, h, glyph, style)
	}
}

func rotorIndex(rotation float64) int {
	step := int(math.Floor(rotation / (math.Pi / 4)))
	return ((step % 4) + 4) % 4
}

func obstacleColor(kind components.ObstacleKind) tcell.Color {
	switch kind {
	case components.ObstacleCone:
		return RgbCone
	case components.ObstacleBarrier:
		return RgbBarrier
	case components.ObstacleRotating:
		return RgbRotating
	default:
		return RgbHazard
	}
}

func (r *TerminalRenderer) drawParticles(f *Frame, tr Transform) {
	for _, p := range f.Sim.Particles {
		col, row := tr.Project(p.X, p.Y)
		if !tr.Visible(col, row) {
			continue
		}
		kind := p.Kind
		if kind == components.ParticleSmoke {
			kind = f.Theme.Particle
		}
		glyph, ok := particleGlyphs[kind]
		if !ok {
			glyph = '.'
		}
		under := r.backgroundAt(f, tr, col, row)
		style := tcell.StyleDefault.Background(under).Foreground(FadeColor(p.Color, under, p.Life))
		r.screen.SetContent(col, row, glyph, nil, style)
	}
}

// backgroundAt returns the surface color under a cell
func (r *TerminalRenderer) backgroundAt(f *Frame, tr Transform, col, row int) tcell.Color {
	if f.Theme.OpenRoad {
		return f.Theme.Background
	}
	x, _ := tr.Unproject(col, row)
	if x < 0 || x >= constants.TrackWidth {
		return f.Theme.Background
	}
	return f.Theme.Road
}

func (r *TerminalRenderer) drawVehicle(f *Frame, tr Transform) {
	v := f.Sim.Vehicle
	color := ParseHexColor(f.Sim.Spec.Color, RgbVehicleDefault)
	style := tcell.StyleDefault.Background(f.Theme.Road).Foreground(color)
	col, row, w, h := tr.ProjectRect(v.Bounds(constants.VehicleRowY, constants.VehicleWidth, constants.VehicleHeight))

	// Lean shifts the nose row one cell toward the turn
	lean := 0
	if v.Rotation > constants.MaxTilt/2 {
		lean = 1
	} else if v.Rotation < -constants.MaxTilt/2 {
		lean = -1
	}
	r.fillClipped(tr, col+lean, row, w, 1, f.Theme.Vehicle, style)
	if h > 1 {
		r.fillClipped(tr, col, row+1, w, h-1, f.Theme.Vehicle, style)
	}

	if f.Sim.Boost.Active {
		flame := tcell.StyleDefault.Background(f.Theme.Road).Foreground(RgbBoostOn)
		r.fillClipped(tr, col, row+h, w, 1, '≈', flame)
	}
}

func (r *TerminalRenderer) drawTexts(f *Frame, tr Transform) {
	for _, t := range f.Sim.Texts {
		col, row := tr.Project(t.X, t.Y)
		col -= runewidth.StringWidth(t.Text) / 2
		if row < tr.view.Y || row >= tr.view.Y+tr.view.H {
			continue
		}
		under := r.backgroundAt(f, tr, col, row)
		style := tcell.StyleDefault.Background(under).Foreground(FadeColor(t.Color, under, t.Life)).Bold(true)
		r.drawText(col, row, t.Text, style)
	}
}

// drawHUD draws the two top rows
func (r *TerminalRenderer) drawHUD(f *Frame) {
	hud := f.HUD
	base := tcell.StyleDefault.Background(RgbHUDBackground).Foreground(RgbHUDText)
	r.fill(0, 0, r.width, constants.HUDTopRows, ' ', base)

	x := r.drawText(1, 0, "VI-RACER", base.Bold(true))
	x = r.drawText(x+2, 0, "SCORE ", base.Foreground(RgbHUDDim))
	x = r.drawText(x, 0, FormatScore(hud.Score), base.Foreground(RgbScore).Bold(true))
	x = r.drawText(x+2, 0, "HP ", base.Foreground(RgbHUDDim))
	x = r.drawHealthBar(x, 0, hud.Health, base)
	r.drawText(x+1, 0, fmt.Sprintf("%3d", hud.Health), base.Foreground(HealthColor(hud.Health, constants.LowHealthThreshold)))

	x = r.drawText(1, 1, fmt.Sprintf("%4.0f km/h", hud.Speed*speedReadout), base)
	gripStyle := base
	if hud.Grip < 1 {
		gripStyle = base.Foreground(RgbGripLoss)
	}
	x = r.drawText(x+2, 1, fmt.Sprintf("GRIP %3.0f%%", hud.Grip*100), gripStyle)
	x = r.drawText(x+2, 1, fmt.Sprintf("LAP %d/%d", hud.Laps, hud.LapTarget), base)
	x = r.drawText(x+2, 1, FormatClock(hud.Elapsed), base)
	if hud.Boost {
		x = r.drawText(x+2, 1, "NITRO", base.Foreground(RgbBoostOn).Bold(true))
	}
	if hud.EventLabel != "" {
		r.drawText(x+2, 1, "["+hud.EventLabel+"]", base.Foreground(RgbEventLabel).Bold(true))
	}
}

// drawHealthBar draws a fixed-width bar, returning the column after it
func (r *TerminalRenderer) drawHealthBar(x, y, health int, base tcell.Style) int {
	filled := health * constants.HealthBarWidth / constants.MaxHealth
	if filled < 0 {
		filled = 0
	}
	if filled > constants.HealthBarWidth {
		filled = constants.HealthBarWidth
	}
	on := base.Foreground(HealthColor(health, constants.LowHealthThreshold))
	off := base.Foreground(RgbHealthEmpty)
	for i := 0; i < constants.HealthBarWidth; i++ {
		if i < filled {
			r.screen.SetContent(x+i, y, '█', nil, on)
		} else {
			r.screen.SetContent(x+i, y, '░', nil, off)
		}
	}
	return x + constants.HealthBarWidth
}

// drawStatus draws commentary and the key help on the bottom rows
func (r *TerminalRenderer) drawStatus(f *Frame) {
	top := r.height - constants.HUDBottomRows
	if top < constants.HUDTopRows {
		return
	}
	base := tcell.StyleDefault.Background(RgbHUDBackground).Foreground(RgbHUDDim)
	r.fill(0, top, r.width, constants.HUDBottomRows, ' ', base)

	commentary := f.HUD.Commentary
	if commentary == "" {
		commentary = constants.DefaultCommentary
	}
	r.drawText(1, top, TruncateText(commentary, r.width-2), base.Foreground(RgbCommentary).Italic(true))

	sound := "ON"
	if f.Muted {
		sound = "OFF"
	}
	status := fmt.Sprintf("CAM %s  THEME %s  SOUND %s  ←→ steer  ↑ gas  ↓ brake  SPACE nitro  c camera  m mute  q quit",
		f.Camera, f.Theme.Name, sound)
	r.drawText(1, top+1, TruncateText(status, r.width-2), base)
}

func (r *TerminalRenderer) drawIdleOverlay(f *Frame) {
	style := tcell.StyleDefault.Background(f.Theme.Background).Foreground(RgbOverlayText)
	r.drawCenteredLines([]string{
		"V I - R A C E R",
		"",
		fmt.Sprintf("Vehicle: %s   Track: %s", f.Vehicle, f.Theme.Name),
		"",
		"Press ENTER to start",
	}, style.Bold(true))
}

func (r *TerminalRenderer) drawGameOverOverlay(f *Frame) {
	hud := f.HUD
	title, color := "WRECKED", RgbLoss
	if hud.Outcome == engine.OutcomeWin {
		title, color = "FINISH!", RgbWin
	}
	style := tcell.StyleDefault.Background(f.Theme.Background).Foreground(color).Bold(true)
	r.drawCenteredLines([]string{
		title,
		"",
		fmt.Sprintf("Score %s   Laps %d/%d   Time %s", FormatScore(hud.Score), hud.Laps, hud.LapTarget, FormatClock(hud.Elapsed)),
		"",
		"ENTER: race again   q: quit",
	}, style)
}

// drawCenteredLines draws a block of lines centered on the screen
func (r *TerminalRenderer) drawCenteredLines(lines []string, style tcell.Style) {
	y := r.height/2 - len(lines)/2
	for i, line := range lines {
		line = TruncateText(line, r.width)
		x := (r.width - runewidth.StringWidth(line)) / 2
		r.drawText(x, y+i, line, style)
	}
}

// drawText draws s at (x, y) and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= 0 && x < r.width && y >= 0 && y < r.height {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x += w
	}
	return x
}

func (r *TerminalRenderer) fill(x, y, w, h int, ch rune, style tcell.Style) {
	for row := y; row < y+h && row < r.height; row++ {
		for col := x; col < x+w && col < r.width; col++ {
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

// fillClipped fills a cell rectangle, skipping cells outside the viewport
func (r *TerminalRenderer) fillClipped(tr Transform, x, y, w, h int, ch rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if tr.Visible(col, row) {
				r.screen.SetContent(col, row, ch, nil, style)
			}
		}
	}
}

// FormatScore zero-pads the score
func FormatScore(score int) string {
	return fmt.Sprintf("%0*d", constants.ScoreDigits, score)
}

// FormatClock formats a race duration as MM:SS:cc
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d / (10 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d:%02d", cs/6000, (cs/100)%60, cs%100)
}

// TruncateText cuts s to at most width display cells, marking the cut with an ellipsis
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

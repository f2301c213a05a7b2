package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/components"
)

// Theme is the per-game-type look of the track
type Theme struct {
	Name       string
	Background tcell.Color
	Road       tcell.Color
	Line       tcell.Color
	OpenRoad   bool // No road surface or edges, background shows through
	Starfield  bool // Smoke becomes stars and a star drift runs behind the track

	Vehicle   rune
	Obstacles [4]rune // Indexed by ObstacleKind
	Particle  components.ParticleKind
}

const DefaultThemeName = "RACING"

var themes = []Theme{
	{
		Name:       "RACING",
		Background: tcell.NewHexColor(0x111827),
		Road:       tcell.NewHexColor(0x1f2937),
		Line:       tcell.NewHexColor(0x4b5563),
		Vehicle:    '█',
		Obstacles:  [4]rune{'▓', '▲', '▬', '✱'},
		Particle:   components.ParticleSmoke,
	},
	{
		Name:       "SPACE",
		Background: tcell.NewHexColor(0x000000),
		Road:       tcell.NewHexColor(0x000000),
		Line:       tcell.NewHexColor(0x6366f1),
		OpenRoad:   true,
		Starfield:  true,
		Vehicle:    '▲',
		Obstacles:  [4]rune{'●', '◆', '▬', '✹'},
		Particle:   components.ParticleStar,
	},
	{
		Name:       "WATER",
		Background: tcell.NewHexColor(0x0284c7),
		Road:       tcell.NewHexColor(0x0ea5e9),
		Line:       tcell.NewHexColor(0xbae6fd),
		Vehicle:    '▼',
		Obstacles:  [4]rune{'▒', '◭', '▬', '✺'},
		Particle:   components.ParticleBubble,
	},
	{
		Name:       "HORSE",
		Background: tcell.NewHexColor(0x365314),
		Road:       tcell.NewHexColor(0xa16207),
		Line:       tcell.NewHexColor(0xfef3c7),
		Vehicle:    '♞',
		Obstacles:  [4]rune{'#', '▲', '╪', '✱'},
		Particle:   components.ParticleDirt,
	},
	{
		Name:       "FLIGHT",
		Background: tcell.NewHexColor(0x1e3a8a),
		Road:       tcell.NewHexColor(0x1e3a8a),
		Line:       tcell.NewHexColor(0x3b5bab),
		OpenRoad:   true,
		Vehicle:    '✈',
		Obstacles:  [4]rune{'◉', '○', '▬', '✣'},
		Particle:   components.ParticleCloud,
	},
	{
		Name:       "FANTASY",
		Background: tcell.NewHexColor(0x2e1065),
		Road:       tcell.NewHexColor(0x4c1d95),
		Line:       tcell.NewHexColor(0xf0abfc),
		Vehicle:    '♜',
		Obstacles:  [4]rune{'†', '▲', '═', '✶'},
		Particle:   components.ParticleMagic,
	},
}

// LookupTheme finds a theme by name, case-insensitively
func LookupTheme(name string) (Theme, bool) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

// DefaultTheme returns the RACING theme
func DefaultTheme() Theme {
	return themes[0]
}

// ThemeNames lists the available theme names in display order
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ObstacleGlyph returns the theme glyph for an obstacle kind
func (t Theme) ObstacleGlyph(kind components.ObstacleKind) rune {
	if int(kind) < len(t.Obstacles) {
		return t.Obstacles[kind]
	}
	return '?'
}

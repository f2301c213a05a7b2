package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HUD palette
var (
	RgbHUDBackground = tcell.NewRGBColor(15, 23, 42)    // Slate 900
	RgbHUDText       = tcell.NewRGBColor(226, 232, 240) // Slate 200
	RgbHUDDim        = tcell.NewRGBColor(100, 116, 139) // Slate 500
	RgbScore         = tcell.NewRGBColor(250, 204, 21)  // Gold
	RgbHealthOK      = tcell.NewRGBColor(34, 197, 94)   // Green
	RgbHealthLow     = tcell.NewRGBColor(239, 68, 68)   // Red
	RgbHealthEmpty   = tcell.NewRGBColor(51, 65, 85)    // Slate 700
	RgbBoostOn       = tcell.NewRGBColor(96, 165, 250)  // Nitro blue
	RgbGripLoss      = tcell.NewRGBColor(249, 115, 22)  // Orange
	RgbEventLabel    = tcell.NewRGBColor(244, 63, 94)   // Rose
	RgbCommentary    = tcell.NewRGBColor(167, 243, 208) // Mint
	RgbOverlayText   = tcell.NewRGBColor(255, 255, 255) // White
	RgbWin           = tcell.NewRGBColor(250, 204, 21)  // Gold
	RgbLoss          = tcell.NewRGBColor(239, 68, 68)   // Red

	// Obstacle colors by kind
	RgbHazard   = tcell.NewRGBColor(220, 38, 38)  // Hazard red
	RgbCone     = tcell.NewRGBColor(249, 115, 22) // Cone orange
	RgbBarrier  = tcell.NewRGBColor(234, 179, 8)  // Barrier yellow
	RgbRotating = tcell.NewRGBColor(168, 85, 247) // Rotor purple

	RgbVehicleDefault = tcell.NewRGBColor(100, 116, 139)
)

// toColorful converts a tcell color; invalid or default colors map to black
func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// FadeColor blends c toward bg as life drops from 1 to 0
func FadeColor(c, bg tcell.Color, life float64) tcell.Color {
	if life >= 1 {
		return c
	}
	if life < 0 {
		life = 0
	}
	return fromColorful(toColorful(bg).BlendLab(toColorful(c), life))
}

// ParseHexColor parses "#rrggbb", returning fallback on error
func ParseHexColor(s string, fallback tcell.Color) tcell.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return fromColorful(c)
}

// HealthColor returns the health bar color for a health value
func HealthColor(health, lowThreshold int) tcell.Color {
	if health <= lowThreshold {
		return RgbHealthLow
	}
	return RgbHealthOK
}

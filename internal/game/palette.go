package game

import "image/color"

// MaterialKey names a colour in the palette. The stage has three flat
// materials; the rest are for actors and overlays.
type MaterialKey int

const (
	MatRed   MaterialKey = iota // floor
	MatGreen                    // furnace
	MatBlue                     // walls
	MatGrid
	MatPlayer
	MatGuard
	MatGuardShooting
	MatGuardDown
	MatGhost
	MatCone
	MatConeAlert
	MatPanel
	MatPanelEdge
	MatText
	MatTextDim
	matCount
)

// Palette is the keyed colour registry the renderer draws from.
type Palette [matCount]color.RGBA

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		MatRed:           {R: 58, G: 22, B: 24, A: 255},
		MatGreen:         {R: 60, G: 190, B: 90, A: 255},
		MatBlue:          {R: 150, G: 40, B: 170, A: 255},
		MatGrid:          {R: 90, G: 40, B: 44, A: 120},
		MatPlayer:        {R: 235, G: 225, B: 200, A: 255},
		MatGuard:         {R: 80, G: 130, B: 220, A: 255},
		MatGuardShooting: {R: 255, G: 70, B: 50, A: 255},
		MatGuardDown:     {R: 70, G: 70, B: 90, A: 255},
		MatGhost:         {R: 140, G: 255, B: 220, A: 110},
		MatCone:          {R: 255, G: 240, B: 170, A: 255},
		MatConeAlert:     {R: 255, G: 60, B: 40, A: 255},
		MatPanel:         {R: 10, G: 8, B: 12, A: 240},
		MatPanelEdge:     {R: 110, G: 50, B: 120, A: 200},
		MatText:          {R: 240, G: 235, B: 225, A: 255},
		MatTextDim:       {R: 150, G: 140, B: 150, A: 255},
	}
}

// Color returns the colour for k, or opaque magenta for an unknown key.
func (p *Palette) Color(k MaterialKey) color.RGBA {
	if k < 0 || k >= matCount {
		return color.RGBA{R: 255, B: 255, A: 255}
	}
	return p[k]
}

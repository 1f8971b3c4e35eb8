package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 11
)

// Feed is a ring buffer of the latest SimLog entries, drawn as a side panel.
type Feed struct {
	entries []sim.SimLogEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]sim.SimLogEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full. It has the shape
// of a SimLog listener.
func (f *Feed) Add(e sim.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *Feed) Recent() []sim.SimLogEntry {
	out := make([]sim.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxEntries)%feedMaxEntries]
	}
	return out
}

// Reset drops every entry.
func (f *Feed) Reset() {
	f.head, f.count = 0, 0
}

// categoryColor tints the marker dot of a row.
func categoryColor(cat string, pal *Palette) color.RGBA {
	switch cat {
	case sim.CatDetect, sim.CatDeath:
		return pal.Color(MatGuardShooting)
	case sim.CatTakedown, sim.CatObjective:
		return pal.Color(MatGreen)
	case sim.CatClock, sim.CatGhost:
		return pal.Color(MatGhost)
	default:
		return pal.Color(MatTextDim)
	}
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (f *Feed) Draw(screen *ebiten.Image, panelX, panelH int, pal *Palette) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), pal.Color(MatPanel), false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, pal.Color(MatPanelEdge), false)

	vector.FillRect(screen, px, 0, feedPanelWidth, 16, color.RGBA{R: 30, G: 16, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "LOOP LOG", panelX+8, 2)
	vector.StrokeLine(screen, px, 16, px+feedPanelWidth, 16, 1.0, pal.Color(MatPanelEdge), false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlighted = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlighted {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 40, G: 24, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+3), 3, 5, categoryColor(e.Category, pal), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5.1f %s %s: %s", e.Stamp, e.Actor, e.Key, e.Value), panelX+12, y)
		y += feedLineHeight
	}
}

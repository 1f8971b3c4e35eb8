package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

// sightRange limits the drawn guard cones, world units.
const sightRange = 8.0

var (
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleFloor = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 40, 44))
	styleWall  = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleGoal  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleCone  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAlert = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGuard = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleGhost = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

// cellView projects the ground plane onto terminal cells. Cells are about
// twice as tall as wide, so one world unit spans two columns and one row.
// +Z runs up the screen and +X to the left.
type cellView struct {
	cx, cy int
	focus  sim.Vec3
}

const colsPerUnit = 2

func (v cellView) cellOf(p sim.Vec3) (col, row int) {
	col = v.cx - int(roundHalfAway((p.X-v.focus.X)*colsPerUnit))
	row = v.cy - int(roundHalfAway(p.Z-v.focus.Z))
	return col, row
}

// worldOf returns the ground point at the centre of a cell.
func (v cellView) worldOf(col, row int) sim.Vec3 {
	return sim.V3(v.focus.X-float64(col-v.cx)/colsPerUnit, 0, v.focus.Z-float64(row-v.cy))
}

func roundHalfAway(f float64) float64 {
	if f < 0 {
		return -float64(int(-f + 0.5))
	}
	return float64(int(f + 0.5))
}

func drawWorld(s tcell.Screen, w, h int, snap sim.Snapshot) {
	v := cellView{cx: w / 2, cy: h / 2, focus: snap.Camera.Focus()}

	var watching []sim.Guard
	for _, g := range snap.Guards {
		if g.State.Mode() == sim.GuardPatrolling {
			watching = append(watching, g)
		}
	}

	// Floor, walls, furnace and cones, cell by cell.
	for row := 1; row < h-1; row++ {
		for col := 0; col < w; col++ {
			p := v.worldOf(col, row)
			r, st := '·', styleFloor
			switch {
			case insideAny(p, snap.Walls):
				r, st = '█', styleWall
			case snap.Furnace != nil && snap.Furnace.Contains(p):
				r, st = '▒', styleGoal
			case seenByAny(p, watching, snap.Walls):
				r, st = '░', styleCone
			}
			s.SetContent(col, row, r, nil, st)
		}
	}

	put := func(p sim.Vec3, r rune, st tcell.Style) {
		col, row := v.cellOf(p)
		if col >= 0 && col < w && row > 0 && row < h-1 {
			s.SetContent(col, row, r, nil, st)
		}
	}
	for _, g := range snap.Ghosts {
		put(g.Transform.Translation, 'g', styleGhost)
	}
	for _, g := range snap.Guards {
		switch g.State.Mode() {
		case sim.GuardDown:
			put(g.Transform.Translation, 'x', styleDim)
		case sim.GuardShooting:
			put(g.Transform.Translation, 'G', styleAlert)
		default:
			put(g.Transform.Translation, 'G', styleGuard)
		}
	}
	pst := styleText.Bold(true)
	if !snap.Player.Life.Alive() {
		pst = styleAlert
	}
	put(snap.Player.Transform.Translation, '@', pst)

	c := snap.Clock
	drawString(s, 0, 0, fmt.Sprintf("%s  loop %5.1f/%4.1fs  wrap in %4.1fs  gen %d  ghosts %d  %s",
		snap.Stage, c.CurrentTime, c.MaxTime, c.Remaining(), c.Generation, len(snap.Ghosts), snap.Player.Life.Phase()), styleText)
}

func insideAny(p sim.Vec3, walls []sim.Wall) bool {
	for _, w := range walls {
		if w.Rect.Contains(p) {
			return true
		}
	}
	return false
}

func seenByAny(p sim.Vec3, guards []sim.Guard, walls []sim.Wall) bool {
	for i := range guards {
		g := &guards[i]
		if p.Sub(g.Transform.Translation).Length() > sightRange {
			continue
		}
		if sim.Look(g, p, walls).Sees() {
			return true
		}
	}
	return false
}

func drawString(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

func drawCentered(s tcell.Screen, w, y int, str string, st tcell.Style) {
	x := (w - len([]rune(str))) / 2
	if x < 0 {
		x = 0
	}
	drawString(s, x, y, str, st)
}

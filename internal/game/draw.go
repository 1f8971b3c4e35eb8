package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
)

const (
	actorRadius = 0.45 // world units
	ghostRadius = 0.4
	gridSpacing = 2.0
)

func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(color.RGBA{R: 12, G: 8, B: 12, A: 255})

	field := dst.SubImage(image.Rect(g.offX, g.offY, g.offX+g.gameWidth, g.offY+g.gameHeight)).(*ebiten.Image)
	cx := float64(g.offX) + float64(g.gameWidth)/2

	switch g.session.Screen() {
	case screen.Title:
		g.drawTitle(field, cx)
	default:
		if g.world != nil {
			g.drawWorld(field, g.world.Snapshot())
		}
		switch g.session.Screen() {
		case screen.Hell:
			g.drawBanner(field, cx, "HELL", "Enter: loop again", MatGuardShooting)
		case screen.Win:
			g.drawBanner(field, cx, "ESCAPED", "Enter: back to title", MatGreen)
		}
		if g.showHUD && g.world != nil {
			g.drawHUD(dst)
		}
	}

	// Playfield frame.
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	vector.StrokeRect(dst, ox-1, oy-1, gw+2, gh+2, 2.0, g.palette.Color(MatPanelEdge), false)

	if g.gameWidth+2*borderWidth+feedPanelWidth <= g.width {
		g.feed.Draw(dst, g.offX+g.gameWidth+g.offX, g.height, &g.palette)
	}

	if g.paused {
		drawText(dst, "PAUSED", g.fonts.hud, float64(g.offX+8), float64(g.offY+g.gameHeight-26), g.palette.Color(MatText))
	}
	if g.frame < g.noticeUntil {
		drawCentered(dst, g.notice, g.fonts.small, cx, float64(g.offY+g.gameHeight-22), g.palette.Color(MatTextDim))
	}
}

func (g *Game) viewFor(snap sim.Snapshot) view {
	return view{
		cx:    float64(g.offX) + float64(g.gameWidth)/2,
		cy:    float64(g.offY) + float64(g.gameHeight)/2,
		focus: snap.Camera.Focus(),
		scale: g.scale,
	}
}

func (g *Game) drawWorld(dst *ebiten.Image, snap sim.Snapshot) {
	v := g.viewFor(snap)
	pal := &g.palette

	ox, oy := float32(g.offX), float32(g.offY)
	vector.FillRect(dst, ox, oy, float32(g.gameWidth), float32(g.gameHeight), pal.Color(MatRed), false)
	g.drawGrid(dst, v)

	if f := snap.Furnace; f != nil {
		x, y, w, h := v.rect(*f)
		glow := pal.Color(MatGreen)
		glow.A = uint8(170 + 60*math.Sin(float64(g.frame)/12))
		vector.FillRect(dst, x, y, w, h, glow, false)
		vector.StrokeRect(dst, x, y, w, h, 2, pal.Color(MatGreen), false)
	}

	for _, w := range snap.Walls {
		x, y, wd, ht := v.rect(w.Rect)
		vector.FillRect(dst, x, y, wd, ht, pal.Color(MatBlue), false)
	}

	var watching, shooting []sim.Guard
	for _, gd := range snap.Guards {
		switch gd.State.Mode() {
		case sim.GuardPatrolling:
			watching = append(watching, gd)
		case sim.GuardShooting:
			shooting = append(shooting, gd)
		}
	}
	g.drawCones(dst, v, watching, snap.Walls, pal.Color(MatCone), 0.18)
	g.drawCones(dst, v, shooting, snap.Walls, pal.Color(MatConeAlert), 0.3)

	for _, gh := range snap.Ghosts {
		g.drawGhost(dst, v, gh)
	}
	for _, gd := range snap.Guards {
		g.drawGuard(dst, v, gd)
	}
	g.drawPlayer(dst, v, snap.Player)
}

func (g *Game) drawGrid(dst *ebiten.Image, v view) {
	halfW := float64(g.gameWidth) / 2 / v.scale
	halfH := float64(g.gameHeight) / 2 / v.scale
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	c := g.palette.Color(MatGrid)

	for x := math.Floor((v.focus.X-halfW)/gridSpacing) * gridSpacing; x <= v.focus.X+halfW; x += gridSpacing {
		sx, _ := v.toScreen(sim.V3(x, 0, v.focus.Z))
		vector.StrokeLine(dst, sx, oy, sx, oy+gh, 1.0, c, false)
	}
	for z := math.Floor((v.focus.Z-halfH)/gridSpacing) * gridSpacing; z <= v.focus.Z+halfH; z += gridSpacing {
		_, sy := v.toScreen(sim.V3(v.focus.X, 0, z))
		vector.StrokeLine(dst, ox, sy, ox+gw, sy, 1.0, c, false)
	}
}

// drawCones fills white fans into an offscreen buffer, then composites the
// buffer once with the tint so overlapping fans do not stack.
func (g *Game) drawCones(dst *ebiten.Image, v view, guards []sim.Guard, walls []sim.Wall, tint color.RGBA, opacity float32) {
	if len(guards) == 0 {
		return
	}
	b := dst.Bounds()
	if g.coneBuf == nil || g.coneBuf.Bounds().Dx() < b.Max.X || g.coneBuf.Bounds().Dy() < b.Max.Y {
		g.coneBuf = ebiten.NewImage(b.Max.X, b.Max.Y)
	}
	buf := g.coneBuf
	buf.Clear()

	for _, gd := range guards {
		pts := conePoints(gd, walls)
		var path vector.Path
		for i, p := range pts {
			x, y := v.toScreen(p)
			if i == 0 {
				path.MoveTo(x, y)
				continue
			}
			path.LineTo(x, y)
		}
		path.Close()
		vector.FillPath(buf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})
	}

	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleWithColor(tint)
	opts.ColorScale.ScaleAlpha(opacity)
	dst.DrawImage(buf, opts)
}

// drawFacing draws a short tick from the actor's centre along its yaw.
func drawFacing(dst *ebiten.Image, v view, t sim.Transform, length float64, clr color.Color) {
	x0, y0 := v.toScreen(t.Translation)
	x1, y1 := v.toScreen(t.Translation.Add(t.Forward().Scale(length)))
	vector.StrokeLine(dst, x0, y0, x1, y1, 2, clr, true)
}

func (g *Game) drawGhost(dst *ebiten.Image, v view, gh sim.Ghost) {
	c := g.palette.Color(MatGhost)
	x, y := v.toScreen(gh.Transform.Translation)
	vector.FillCircle(dst, x, y, v.length(ghostRadius), c, true)
	drawFacing(dst, v, gh.Transform, 0.7, c)
	drawText(dst, fmt.Sprintf("g%d", gh.Generation), g.fonts.small, float64(x+v.length(ghostRadius)+2), float64(y)-8, c)
}

func (g *Game) drawGuard(dst *ebiten.Image, v view, gd sim.Guard) {
	pal := &g.palette
	x, y := v.toScreen(gd.Transform.Translation)
	r := v.length(actorRadius)

	if gd.Transform.Fallen {
		// Lying on its side: a flat bar across the facing.
		fx, fy := v.toScreen(gd.Transform.Translation.Add(gd.Transform.Forward().Scale(actorRadius * 2)))
		vector.StrokeLine(dst, x, y, fx, fy, r, pal.Color(MatGuardDown), true)
		return
	}

	c := pal.Color(MatGuard)
	if gd.State.Mode() == sim.GuardShooting {
		c = pal.Color(MatGuardShooting)
		if age, ok := g.anim.Age(gd.ID, sim.TrackShoot); ok && age%20 < 6 {
			mx, my := v.toScreen(gd.Transform.Translation.Add(gd.Transform.Forward().Scale(actorRadius * 2.2)))
			vector.FillCircle(dst, mx, my, r*0.6, color.RGBA{R: 255, G: 230, B: 120, A: 230}, true)
		}
	}
	vector.FillCircle(dst, x, y, r, c, true)
	drawFacing(dst, v, gd.Transform, 0.8, pal.Color(MatText))
	drawText(dst, gd.Name, g.fonts.small, float64(x)+float64(r)+2, float64(y)-8, pal.Color(MatTextDim))
}

func (g *Game) drawPlayer(dst *ebiten.Image, v view, p sim.Player) {
	pal := &g.palette
	x, y := v.toScreen(p.Transform.Translation)
	r := v.length(actorRadius)

	c := pal.Color(MatPlayer)
	if !p.Life.Alive() {
		c.A = 120
	}
	vector.FillCircle(dst, x, y, r, c, true)
	drawFacing(dst, v, p.Transform, 0.8, pal.Color(MatRed))

	if age, ok := g.anim.Age(p.ID, sim.TrackPunch); ok && age < 12 {
		ring := pal.Color(MatGreen)
		vector.StrokeCircle(dst, x, y, r+float32(age)*1.5, 2, ring, true)
	}
}

func (g *Game) drawBanner(dst *ebiten.Image, cx float64, title, hint string, key MaterialKey) {
	b := dst.Bounds()
	vector.FillRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), color.RGBA{A: 150}, false)
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	drawCentered(dst, title, g.fonts.banner, cx, cy-70, g.palette.Color(key))
	drawCentered(dst, hint, g.fonts.hud, cx, cy+10, g.palette.Color(MatText))
	st := g.session.Stats()
	drawCentered(dst, fmt.Sprintf("attempts %d   deaths %d   escapes %d", st.Attempts, st.Deaths, st.Wins),
		g.fonts.small, cx, cy+40, g.palette.Color(MatTextDim))
}

func (g *Game) drawTitle(dst *ebiten.Image, cx float64) {
	b := dst.Bounds()
	cy := float64(b.Min.Y) + float64(b.Dy())/2
	pal := &g.palette
	vector.FillRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), pal.Color(MatRed), false)
	drawCentered(dst, "GHOST LOOP", g.fonts.banner, cx, cy-110, pal.Color(MatGhost))
	drawCentered(dst, g.session.Stage().Name, g.fonts.hud, cx, cy-30, pal.Color(MatTextDim))
	drawCentered(dst, "Reach the furnace unseen. Every loop, your past self walks again.", g.fonts.small, cx, cy, pal.Color(MatText))
	drawCentered(dst, "Enter: start    Esc: quit", g.fonts.hud, cx, cy+40, pal.Color(MatText))
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	pal := &g.palette
	snap := g.world.Snapshot()
	clock := snap.Clock
	p := snap.Player

	lines := []string{
		snap.Stage,
		fmt.Sprintf("LOOP %5.1f / %4.1fs  GEN %d", clock.CurrentTime, clock.MaxTime, clock.Generation),
		fmt.Sprintf("WRAP IN %4.1fs", clock.Remaining()),
		fmt.Sprintf("GHOSTS %d  PLAYER %s", len(snap.Ghosts), p.Life.Phase()),
	}
	if p.Life.Phase() == sim.Descending {
		lines = append(lines, fmt.Sprintf("SPOTTED  %.2fs", p.Life.Countdown()))
	}
	lines = append(lines, "WASD move  P pause  C copy  H hud  +/- zoom")

	const lineH = 20
	const padX, padY = 8, 6
	bx := float32(g.offX + 8)
	by := float32(g.offY + 8)
	boxW := float32(440)
	boxH := float32(len(lines)*lineH + padY*2 + 8)

	vector.FillRect(dst, bx, by, boxW, boxH, pal.Color(MatPanel), false)
	vector.StrokeRect(dst, bx, by, boxW, boxH, 1.0, pal.Color(MatPanelEdge), false)

	for i, line := range lines {
		c := pal.Color(MatText)
		if i == len(lines)-1 {
			c = pal.Color(MatTextDim)
		}
		drawText(dst, line, g.fonts.hud, float64(bx)+padX, float64(by)+padY+float64(i*lineH), c)
	}

	// Loop progress bar along the bottom of the box.
	barY := by + boxH - 6
	barW := boxW - 2*padX
	vector.FillRect(dst, bx+padX, barY, barW, 3, pal.Color(MatGrid), false)
	vector.FillRect(dst, bx+padX, barY, barW*float32(clock.Fraction()), 3, pal.Color(MatGhost), false)
}

// Package game is the ebiten host: it feeds keyboard input to a session,
// draws the world top-down and shows the title, hell and win screens.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/config"
	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/session"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

// borderWidth is the pixel gap between the window edge and the playfield.
const borderWidth = 24

// worldScale is the default zoom in pixels per world unit.
const worldScale = 26.0

// noticeFrames is how long a status notice stays on screen.
const noticeFrames = 150

type Game struct {
	width      int
	height     int
	gameWidth  int // playfield width (feed panel takes the rest)
	gameHeight int
	offX       int
	offY       int

	session *session.Session
	log     *zap.Logger
	feed    *Feed
	anim    *Animations
	palette Palette
	fonts   *fonts
	world   *sim.World // world being drawn; changes on every spawn

	dt          float64 // fixed simulation step, 1/TPS
	scale       float64
	paused      bool
	showHUD     bool
	notice      string
	noticeUntil int
	frame       int

	prevKeys map[ebiten.Key]bool
	pressed  func(ebiten.Key) bool
	coneBuf  *ebiten.Image
}

// New builds the host and its session. The session starts on the title
// screen; the first world is spawned when the player confirms.
func New(cfg *config.Config, st *stage.Stage, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	style, err := sim.ParseMoveStyle(cfg.Session.MoveStyle)
	if err != nil {
		return nil, fmt.Errorf("session.move_style: %w", err)
	}
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}

	anim := NewAnimations(log.Named("anim"))
	sess := session.New(st, log, session.Options{
		MoveStyle:       style,
		MaxGhostSamples: cfg.Ghost.MaxSamples,
		Animator:        anim,
	})

	g := &Game{
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		session:  sess,
		log:      sess.Logger(),
		feed:     NewFeed(),
		anim:     anim,
		palette:  DefaultPalette(),
		fonts:    f,
		dt:       1 / float64(cfg.Window.TPS),
		scale:    worldScale,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		pressed:  ebiten.IsKeyPressed,
	}
	g.offX = borderWidth
	g.offY = borderWidth
	g.gameWidth = g.width - feedPanelWidth - 2*borderWidth
	if g.gameWidth < 200 {
		g.gameWidth = g.width - 2*borderWidth
	}
	g.gameHeight = g.height - 2*borderWidth
	sess.Subscribe(g.feed.Add)
	return g, nil
}

// Session exposes the session the host drives.
func (g *Game) Session() *session.Session { return g.session }

func (g *Game) Update() error {
	in := g.handleInput()
	g.frame++
	g.anim.Advance()

	if in.quit {
		return ebiten.Termination
	}
	if g.paused && g.session.Screen() == screen.Playing {
		return nil
	}
	if err := g.session.Update(g.dt, in.Input); err != nil {
		return err
	}
	if w := g.session.World(); w != g.world {
		g.world = w
		g.anim.Prune(g.session.Alive)
	}
	return nil
}

// frameInput is one frame of keyboard input.
type frameInput struct {
	session.Input
	quit bool
}

func (g *Game) handleInput() frameInput {
	currentKeys := make(map[ebiten.Key]bool)
	justPressed := func(k ebiten.Key) bool {
		currentKeys[k] = g.pressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	var in frameInput

	// Enter or Space moves past title, hell and win. Both are polled every
	// frame so their previous state stays current.
	enter := justPressed(ebiten.KeyEnter)
	space := justPressed(ebiten.KeySpace)
	in.Confirm = enter || space

	if justPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if justPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if justPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if justPressed(ebiten.KeyEqual) && g.scale < 80 {
		g.scale *= 1.25
	}
	if justPressed(ebiten.KeyMinus) && g.scale > 8 {
		g.scale /= 1.25
	}
	if justPressed(ebiten.KeyEscape) && g.session.Screen() == screen.Title {
		in.quit = true
	}

	in.Keys = heldKeys(g.pressed)
	g.prevKeys = currentKeys
	return in
}

// heldKeys maps WASD and the arrow keys onto direction bits.
func heldKeys(pressed func(ebiten.Key) bool) sim.KeySet {
	var keys sim.KeySet
	if pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp) {
		keys |= sim.KeyUp
	}
	if pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown) {
		keys |= sim.KeyDown
	}
	if pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft) {
		keys |= sim.KeyLeft
	}
	if pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight) {
		keys |= sim.KeyRight
	}
	return keys
}

func (g *Game) copyReport() {
	if err := writeClipboard(sessionReport(g.session)); err != nil {
		g.log.Warn("copy report", zap.Error(err))
		g.setNotice("clipboard unavailable")
		return
	}
	g.setNotice("report copied to clipboard")
}

func (g *Game) setNotice(s string) {
	g.notice = s
	g.noticeUntil = g.frame + noticeFrames
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

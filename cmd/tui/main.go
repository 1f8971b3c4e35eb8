// Command tui plays Ghost Loop in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Ghost-Loop/internal/config"
	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/session"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

// defaultLogFile receives the log while tcell owns the terminal.
const defaultLogFile = "ghostloop-tui.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", config.Path(), "path to the TOML config")
	stagePath := flag.String("stage", "", "stage YAML (overrides session.stage)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if out := cfg.Logging.Output; out == "" || out == "stderr" || out == "stdout" {
		cfg.Logging.Output = defaultLogFile
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if *stagePath != "" {
		cfg.Session.Stage = *stagePath
	}
	st, err := stage.Load(cfg.Session.Stage)
	if err != nil {
		return err
	}
	style, err := sim.ParseMoveStyle(cfg.Session.MoveStyle)
	if err != nil {
		return fmt.Errorf("session.move_style: %w", err)
	}

	sess := session.New(st, log, session.Options{
		MoveStyle:       style,
		MaxGhostSamples: cfg.Ghost.MaxSamples,
	})
	defer sess.Close()

	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer scr.Fini()

	t := &terminal{
		screen:  scr,
		session: sess,
		log:     sess.Logger(),
		dt:      1 / float64(cfg.Window.TPS),
		keys:    newKeyHold(holdTicks(cfg.Window.TPS)),
	}
	log.Info("starting", zap.String("stage", st.Name), zap.String("host", "tui"))
	err = t.loop(time.Second / time.Duration(cfg.Window.TPS))
	log.Info("stopped", zap.Any("stats", sess.Stats()))
	return err
}

// terminal drives a session from tcell events on a fixed ticker.
type terminal struct {
	screen  tcell.Screen
	session *session.Session
	log     *zap.Logger
	dt      float64
	keys    *keyHold
	confirm bool
}

func (t *terminal) loop(step time.Duration) error {
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			in := session.Input{Keys: t.keys.tick(), Confirm: t.confirm}
			t.confirm = false
			if err := t.session.Update(t.dt, in); err != nil {
				return err
			}
			t.draw()
		}
	}
}

// handleEvent returns false when the player quits.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if isConfirm(ev.Key(), ev.Rune()) {
			t.confirm = true
			return true
		}
		if k, ok := keyFor(ev.Key(), ev.Rune()); ok {
			t.keys.press(k)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func isConfirm(key tcell.Key, r rune) bool {
	return key == tcell.KeyEnter || (key == tcell.KeyRune && r == ' ')
}

// keyFor maps WASD and the arrow keys onto a direction bit.
func keyFor(key tcell.Key, r rune) (sim.KeySet, bool) {
	switch key {
	case tcell.KeyUp:
		return sim.KeyUp, true
	case tcell.KeyDown:
		return sim.KeyDown, true
	case tcell.KeyLeft:
		return sim.KeyLeft, true
	case tcell.KeyRight:
		return sim.KeyRight, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return sim.KeyUp, true
		case 's', 'S':
			return sim.KeyDown, true
		case 'a', 'A':
			return sim.KeyLeft, true
		case 'd', 'D':
			return sim.KeyRight, true
		}
	}
	return 0, false
}

// holdTicks is how long one key press counts as held: a little longer than
// a typical keyboard auto-repeat interval.
func holdTicks(tps int) int {
	n := tps / 6
	if n < 2 {
		n = 2
	}
	return n
}

// keyHold turns terminal key presses into held keys. Terminals send no
// key-up event, so each press is held for a few ticks and auto-repeat
// keeps it alive.
type keyHold struct {
	span      int
	remaining [4]int
}

var holdBits = [4]sim.KeySet{sim.KeyUp, sim.KeyDown, sim.KeyLeft, sim.KeyRight}

func newKeyHold(span int) *keyHold {
	return &keyHold{span: span}
}

func (h *keyHold) press(k sim.KeySet) {
	for i, b := range holdBits {
		if k.Has(b) {
			h.remaining[i] = h.span
		}
	}
}

// tick returns the keys held this tick and ages every press by one.
func (h *keyHold) tick() sim.KeySet {
	var held sim.KeySet
	for i, b := range holdBits {
		if h.remaining[i] > 0 {
			held |= b
			h.remaining[i]--
		}
	}
	return held
}

func (t *terminal) draw() {
	t.screen.Clear()
	w, h := t.screen.Size()
	switch t.session.Screen() {
	case screen.Title:
		drawCentered(t.screen, w, h/2-2, "GHOST LOOP", styleTitle)
		drawCentered(t.screen, w, h/2, t.session.Stage().Name, styleDim)
		drawCentered(t.screen, w, h/2+2, "Enter: start   q: quit", styleText)
	default:
		if world := t.session.World(); world != nil {
			drawWorld(t.screen, w, h, world.Snapshot())
		}
		st := t.session.Stats()
		switch t.session.Screen() {
		case screen.Hell:
			drawCentered(t.screen, w, h/2, " HELL  Enter: loop again ", styleAlert)
		case screen.Win:
			drawCentered(t.screen, w, h/2, " ESCAPED  Enter: title ", styleGoal)
		}
		drawString(t.screen, 0, h-1, fmt.Sprintf("attempts %d  deaths %d  escapes %d   wasd/arrows move  q quit",
			st.Attempts, st.Deaths, st.Wins), styleDim)
	}
	t.screen.Show()
}

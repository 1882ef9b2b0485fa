// Package render draws committed frames as a top-down terminal view.
package render

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/oasis/asset"
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/engine"
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
	styleBlank  = tcell.StyleDefault.Background(tcell.ColorBlack)
)

// Cells per world unit, terminal cells are about twice as tall as wide
const (
	thirdPersonScaleX = 2
	thirdPersonScaleZ = 1
	firstPersonScaleX = 4
	firstPersonScaleZ = 2
)

// Terminal renders frames to a tcell screen
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	buf    *Buffer
	loader asset.Loader[Glyph]
	logger *zap.Logger

	assets asset.Set
	ground Glyph
	sky    Glyph
}

// NewTerminal creates a renderer drawing to screen
func NewTerminal(screen tcell.Screen, loader asset.Loader[Glyph], logger *zap.Logger) *Terminal {
	w, h := screen.Size()
	return &Terminal{
		screen: screen,
		buf:    NewBuffer(w, h),
		loader: loader,
		logger: logger,
		ground: Glyph{' ', tcell.StyleDefault},
		sky:    Glyph{' ', tcell.StyleDefault},
	}
}

// Render composes f and flushes it to the screen
func (t *Terminal) Render(f engine.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if w, h := t.screen.Size(); w != t.buf.width || h != t.buf.height {
		t.buf.Resize(w, h)
	}
	t.compose(f)
	t.buf.Flush(t.screen)
	return nil
}

// swapAssets loads the environment glyphs of a new asset set, keeping the previous ones on failure
func (t *Terminal) swapAssets(set asset.Set) {
	if set == t.assets {
		return
	}
	t.assets = set
	if g, err := t.loader.Load(set.Ground); err == nil {
		t.ground = g
	} else {
		t.logger.Warn("ground asset unavailable", zap.Error(err))
	}
	if g, err := t.loader.Load(set.Sky); err == nil {
		t.sky = g
	} else {
		t.logger.Warn("sky asset unavailable", zap.Error(err))
	}
}

func (t *Terminal) compose(f engine.Frame) {
	t.swapAssets(f.Assets)
	b := t.buf
	w, h := b.Size()
	if w == 0 || h == 0 {
		return
	}

	switch f.HUD.Terminal {
	case core.TerminalWon:
		t.banner("YOU WON :D", f.HUD.Score)
		return
	case core.TerminalLost:
		t.banner("YOU LOST :(", f.HUD.Score)
		return
	}

	b.Fill(t.ground.Rune, t.ground.Style)
	for x := 0; x < w; x++ {
		b.Set(x, 0, t.sky.Rune, t.sky.Style)
	}

	sx, sz := thirdPersonScaleX, thirdPersonScaleZ
	view := "third"
	if f.FirstPerson {
		sx, sz = firstPersonScaleX, firstPersonScaleZ
		view = "first"
	}

	// View centers on the camera look-at point
	cx, cy := w/2, (h+1)/2
	vx, vz := f.Camera.Center.X, f.Camera.Center.Z
	project := func(x, z float64) (int, int) {
		col := cx - int(math.Round((x-vx)*float64(sx)))
		row := cy - int(math.Round((z-vz)*float64(sz)))
		return col, row
	}

	for _, e := range f.Entities {
		g, err := t.loader.Load(e.Model)
		if err != nil {
			g = Fallback
		}
		col, row := project(e.Position.X, e.Position.Z)
		if row > 0 {
			b.Set(col, row, g.Rune, g.Style.Background(backgroundOf(t.ground.Style)))
		}
	}

	col, row := project(f.Player.Position.X, f.Player.Position.Z)
	pr := arrow(f.Player.Heading)
	if f.Player.Position.Y > 0 {
		pr = '^'
	}
	if row > 0 {
		b.Set(col, row, pr, stylePlayer.Background(backgroundOf(t.ground.Style)))
	}

	hud := fmt.Sprintf(" Score: %d  Time: %d  Zone: %s  View: %s ", f.HUD.Score, f.HUD.Countdown, f.HUD.Zone, view)
	b.Text(0, 0, hud, styleHUD.Background(backgroundOf(t.sky.Style)))
}

func (t *Terminal) banner(msg string, score int) {
	b := t.buf
	w, h := b.Size()
	b.Fill(' ', styleBlank)
	b.Text((w-len([]rune(msg)))/2, h/2, msg, styleBanner)
	sub := fmt.Sprintf("Score: %d", score)
	b.Text((w-len(sub))/2, h/2+1, sub, styleHUD.Background(tcell.ColorBlack))
}

func backgroundOf(s tcell.Style) tcell.Color {
	_, bg, _ := s.Decompose()
	return bg
}

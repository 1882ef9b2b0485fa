package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/oasis/asset"
)

// Glyph is the terminal stand-in for a model or texture
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

var (
	styleSand   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(194, 178, 128)).Background(tcell.NewRGBColor(60, 52, 30))
	styleCave   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 100)).Background(tcell.NewRGBColor(20, 20, 26))
	styleSky    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(40, 90, 170))
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// glyphs by asset stem
var glyphs = map[string]Glyph{
	"aladdin":    {'@', stylePlayer},
	"snake":      {'S', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)},
	"rock":       {'#', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	"bottle":     {'w', tcell.StyleDefault.Foreground(tcell.ColorAqua)},
	"diamond":    {'*', tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)},
	"ghost":      {'G', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)},
	"treasure":   {'$', tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)},
	"cave":       {'O', tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown).Bold(true)},
	"sand":       {'.', styleSand},
	"caveground": {':', styleCave},
	"blu-sky-3":  {' ', styleSky},
}

// GlyphLoader resolves asset paths to glyphs
type GlyphLoader struct{}

func (GlyphLoader) Load(path string) (Glyph, error) {
	g, ok := glyphs[asset.Stem(path)]
	if !ok {
		return Glyph{}, fmt.Errorf("glyph for %q: %w", path, asset.ErrAssetNotFound)
	}
	return g, nil
}

// Fallback is drawn for entities whose model has no glyph
var Fallback = Glyph{'?', tcell.StyleDefault.Foreground(tcell.ColorRed)}

// heading arrows, index = heading/45, 0 faces up the screen
var arrows = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

func arrow(heading float64) rune {
	i := int(heading/45+0.5) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

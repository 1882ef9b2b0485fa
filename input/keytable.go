// Package input translates terminal events into game actions.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/oasis/core"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (arrows, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]core.Action

	// Printable rune bindings
	Runes map[rune]core.Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]core.Action{
			tcell.KeyUp:     core.ActionAdvance,
			tcell.KeyDown:   core.ActionReverse,
			tcell.KeyLeft:   core.ActionTurnLeft,
			tcell.KeyRight:  core.ActionTurnRight,
			tcell.KeyEscape: core.ActionQuit,
			tcell.KeyCtrlC:  core.ActionQuit,
			tcell.KeyCtrlQ:  core.ActionQuit,
		},
		Runes: map[rune]core.Action{
			' ': core.ActionJump,
			'f': core.ActionToggleFirstPerson,
			'F': core.ActionToggleFirstPerson,
			'k': core.ActionAdvance,
			'j': core.ActionReverse,
			'h': core.ActionTurnLeft,
			'l': core.ActionTurnRight,
		},
	}
}

// Lookup resolves a key event
func (t *KeyTable) Lookup(ev *tcell.EventKey) (core.Action, bool) {
	return t.Resolve(ev.Key(), ev.Rune())
}

// Resolve maps a key code, r is only consulted for KeyRune
func (t *KeyTable) Resolve(key tcell.Key, r rune) (core.Action, bool) {
	if key == tcell.KeyRune {
		a, ok := t.Runes[r]
		return a, ok
	}
	a, ok := t.SpecialKeys[key]
	return a, ok
}

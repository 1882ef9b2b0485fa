package input

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/oasis/core"
)

// Poller reads terminal events and forwards the mapped actions
type Poller struct {
	screen tcell.Screen
	table  *KeyTable
	out    chan core.Action
	logger *zap.Logger

	buttonDown bool
}

// NewPoller creates a poller with a buffered action channel
func NewPoller(screen tcell.Screen, table *KeyTable, logger *zap.Logger) *Poller {
	return &Poller{
		screen: screen,
		table:  table,
		out:    make(chan core.Action, 16),
		logger: logger,
	}
}

// Actions is the channel of mapped actions, closed when Run returns
func (p *Poller) Actions() <-chan core.Action {
	return p.out
}

// Run blocks polling the screen until it is finalized or ctx is done
func (p *Poller) Run(ctx context.Context) error {
	defer close(p.out)

	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return nil
		}

		a, ok := p.translate(ev)
		if !ok {
			continue
		}

		select {
		case p.out <- a:
		case <-ctx.Done():
			return nil
		}
		if a == core.ActionQuit {
			return nil
		}
	}
}

func (p *Poller) translate(ev tcell.Event) (core.Action, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.table.Lookup(ev)

	case *tcell.EventMouse:
		// Jump fires on button release
		pressed := ev.Buttons()&tcell.Button1 != 0
		released := p.buttonDown && !pressed
		p.buttonDown = pressed
		if released {
			return core.ActionJump, true
		}

	case *tcell.EventResize:
		p.screen.Sync()
		p.logger.Debug("terminal resized")
	}
	return core.ActionNone, false
}

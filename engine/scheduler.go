package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/oasis/core"
)

// ErrQuit is returned by Run when the player asks to leave
var ErrQuit = errors.New("quit requested")

// Scheduler serializes the simulation tick, the countdown tick and input delivery on one goroutine
// Sinks are invoked after each tick commits
type Scheduler struct {
	game              *Game
	simInterval       time.Duration
	countdownInterval time.Duration
	inputs            <-chan core.Action
	renderers         []Renderer
	audio             AudioPlayer
	logger            *zap.Logger
}

// NewScheduler creates a scheduler ticking at simHz and countdownHz
func NewScheduler(game *Game, simHz, countdownHz float64, inputs <-chan core.Action, audio AudioPlayer, logger *zap.Logger, renderers ...Renderer) *Scheduler {
	return &Scheduler{
		game:              game,
		simInterval:       hzToInterval(simHz),
		countdownInterval: hzToInterval(countdownHz),
		inputs:            inputs,
		renderers:         renderers,
		audio:             audio,
		logger:            logger,
	}
}

func hzToInterval(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}

// Run loops until ctx is done, the input channel closes or a Quit action arrives
func (s *Scheduler) Run(ctx context.Context) error {
	sim := time.NewTicker(s.simInterval)
	defer sim.Stop()
	countdown := time.NewTicker(s.countdownInterval)
	defer countdown.Stop()

	s.dispatch(s.game.Snapshot())

	inputs := s.inputs
	for {
		select {
		case <-ctx.Done():
			return nil

		case a, ok := <-inputs:
			if !ok {
				// Input source gone, keep simulating until cancelled
				inputs = nil
				continue
			}
			if a == core.ActionQuit {
				return ErrQuit
			}
			s.game.Enqueue(a)

		case <-sim.C:
			s.dispatch(s.game.Step())

		case <-countdown.C:
			s.game.CountdownTick()
		}
	}
}

// dispatch hands audio effects to the player and the frame to every renderer
func (s *Scheduler) dispatch(f Frame) {
	for _, e := range f.Effects {
		if e.Kind == core.EffectAudio && s.audio != nil {
			s.audio.Play(e.Cue, e.Volume, e.Loop)
		}
	}
	for _, r := range s.renderers {
		if err := r.Render(f); err != nil {
			s.logger.Warn("render failed", zap.Uint64("tick", f.Tick), zap.Error(err))
		}
	}
}

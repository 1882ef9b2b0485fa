package engine

import (
	"math/rand/v2"

	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/interaction"
	"github.com/lixenwraith/oasis/placement"
)

// World is the explicit simulation context, owned by the scheduler goroutine
type World struct {
	Player      *core.Entity
	Entities    placement.Population
	Session     core.Session
	Interaction *interaction.State
	Rng         *rand.Rand
	Tick        uint64
}

// NewWorld creates a context with the player registered in its category
func NewWorld(player *core.Entity, session core.Session, rng *rand.Rand) *World {
	return &World{
		Player:      player,
		Entities:    placement.Population{core.CategoryPlayer: {player}},
		Session:     session,
		Interaction: interaction.NewState(),
		Rng:         rng,
	}
}

// Add registers entities in their category lists
func (w *World) Add(es ...*core.Entity) {
	for _, e := range es {
		w.Entities[e.Category] = append(w.Entities[e.Category], e)
	}
}

// Find returns the first entity with label, nil if absent
func (w *World) Find(label string) *core.Entity {
	for _, cat := range core.Categories() {
		for _, e := range w.Entities[cat] {
			if e.Label == label {
				return e
			}
		}
	}
	return nil
}

func (w *World) scene() interaction.Scene {
	return interaction.Scene{
		Player:   w.Player,
		Entities: w.Entities,
		Session:  &w.Session,
		State:    w.Interaction,
	}
}

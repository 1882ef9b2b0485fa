package config

import (
	"github.com/lixenwraith/oasis/asset"
	"github.com/lixenwraith/oasis/camera"
	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/interaction"
	"github.com/lixenwraith/oasis/placement"
	"github.com/lixenwraith/oasis/vmath"
)

const (
	populationTarget = 5
	minSeparation    = 5
)

var (
	// Surface spawn area, integer lattice
	spawnArea = vmath.R(-48, 48, -48, 48)
	// Cave mouth footprint, open rect (28,57)x(28,41) expressed on the lattice
	caveFootprint = vmath.R(29, 56, 29, 40)
)

// Entity templates of the stock game
var (
	PlayerTemplate = core.EntityTemplate{
		Label: "aladdin", Category: core.CategoryPlayer, Zone: core.ZoneSurface,
		Scale: 0.04, CollisionRadius: 0.5, Model: "models/aladdin/aladdin.3ds",
	}
	SnakeTemplate = core.EntityTemplate{
		Label: "snake", Category: core.CategoryEnemy, Zone: core.ZoneSurface,
		Scale: 0.03, CollisionRadius: 0.5, Model: "models/snake/snake.3ds",
	}
	RockTemplate = core.EntityTemplate{
		Label: "rock", Category: core.CategoryObstacle, Zone: core.ZoneSurface,
		Scale: 0.3, CollisionRadius: 0.5, Model: "models/rock1/rock.3ds",
	}
	WaterTemplate = core.EntityTemplate{
		Label: "water", Category: core.CategoryCollectible, Zone: core.ZoneSurface,
		Scale: 0.09, CollisionRadius: 0.5, Model: "models/bottle/bottle.3ds",
	}
)

func quota(tpl core.EntityTemplate, separateFrom ...core.Category) placement.Quota {
	return placement.Quota{
		Template:      tpl,
		Target:        populationTarget,
		Bounds:        spawnArea,
		MinSeparation: minSeparation,
		Forbidden:     []vmath.Rect{caveFootprint},
		SeparateFrom:  separateFrom,
		Lattice:       true,
		MaxAttempts:   10000,
		Fallback:      placement.FallbackRelax,
		RelaxSteps:    3,
	}
}

func static(label string, cat core.Category, zone core.Zone, scale float64, model string, x, y, z float64) Static {
	return Static{
		Template: core.EntityTemplate{
			Label: label, Category: cat, Zone: zone,
			Scale: scale, CollisionRadius: 0.5, Model: model,
		},
		Position: vmath.V3(x, y, z),
	}
}

func damage(name string, bounds vmath.Rect, groundOnly bool) interaction.Region {
	return interaction.Region{
		Name: name, Bounds: bounds, Effect: interaction.EffectDamage,
		GroundOnly: groundOnly, Zone: core.ZoneCave,
	}
}

func collect(label string, bounds vmath.Rect) interaction.Region {
	return interaction.Region{
		Name: label, Bounds: bounds, Effect: interaction.EffectCollectOnce,
		OneShot: true, GroundOnly: true, Zone: core.ZoneCave, Entity: label,
	}
}

// Default returns the stock game configuration
func Default() *Config {
	const (
		diamond  = "models/diamond/diamond.3ds"
		ghost    = "models/ghost/ghost.3ds"
		boulder  = "models/rock2/rock.3ds"
		treasure = "models/treasure/treasure.3ds"
	)

	return &Config{
		World: World{
			Bounds:       vmath.R(-37, 59, -53, 50),
			Headings:     8,
			Gravity:      -0.3,
			JumpVelocity: 2,
		},
		Session: Session{Countdown: 180},
		Timing:  Timing{SimHz: 60, CountdownHz: 1},
		Player:  PlayerTemplate,
		Quotas: []placement.Quota{
			quota(SnakeTemplate, core.CategoryEnemy),
			quota(RockTemplate, core.CategoryEnemy, core.CategoryObstacle),
			quota(WaterTemplate, core.CategoryEnemy, core.CategoryObstacle, core.CategoryCollectible),
		},
		Margins: map[core.Category]float64{
			core.CategoryEnemy:       0.5,
			core.CategoryObstacle:    0.3,
			core.CategoryCollectible: 0.04,
		},
		Regions: []interaction.Region{
			{
				Name: "cave_entrance", Bounds: vmath.R(28, 35, 28, 34), Effect: interaction.EffectEnterZone,
				OneShot: true, Open: true, Zone: core.ZoneSurface, Target: core.ZoneCave,
			},
			damage("boulder_1", vmath.R(8, 12, 18, 21), true),
			damage("boulder_2", vmath.R(-12, -8, -44, -35), false),
			damage("ghost_2_low", vmath.R(-12, -8, -42, -38), true),
			damage("ghost_1", vmath.R(8, 12, 38, 42), true),
			damage("ghost_3", vmath.R(43, 47, 38, 42), true),
			damage("ghost_2", vmath.R(-22, -18, -22, -18), true),
			collect("diamond1", vmath.R(16, 23, 16, 24)),
			collect("diamond2", vmath.R(-34, -26, 26, 34)),
			collect("diamond3", vmath.R(3, 7, 28, 32)),
			{
				Name: "treasure", Bounds: vmath.R(15, 25, -52, -48), Effect: interaction.EffectFinish,
				OneShot: true, Zone: core.ZoneCave, Entity: "treasure",
			},
		},
		Statics: []Static{
			static("cave", core.CategoryZoneMarker, core.ZoneSurface, 0.02, "models/cave/cave.3ds", 20, 0, 20),
			static("diamond1", core.CategoryCollectible, core.ZoneCave, 0.5, diamond, 20, 0, 20),
			static("diamond2", core.CategoryCollectible, core.ZoneCave, 0.5, diamond, -30, 0, 30),
			static("diamond3", core.CategoryCollectible, core.ZoneCave, 0.5, diamond, 5, 0, 30),
			static("ghost1", core.CategoryEnemy, core.ZoneCave, 4, ghost, 10, 0, 40),
			static("ghost2", core.CategoryEnemy, core.ZoneCave, 4, ghost, -20, 0, -20),
			static("ghost3", core.CategoryEnemy, core.ZoneCave, 4, ghost, 45, 0, 40),
			static("boulder1", core.CategoryObstacle, core.ZoneCave, 40, boulder, 10, 3, 20),
			static("boulder2", core.CategoryObstacle, core.ZoneCave, 40, boulder, -10, 3, -40),
			static("treasure", core.CategoryGoal, core.ZoneCave, 0.09, treasure, 20, 0, -50),
		},
		Camera: Camera{
			ThirdPerson: camera.ThirdPerson,
			FirstPerson: camera.FirstPerson,
		},
		Audio: Audio{
			Volumes: map[string]float64{
				core.CueTheme:     0.3,
				core.CueStep:      0.03,
				core.CueCollision: 0.5,
				core.CueWhoosh:    0.5,
				core.CueTarget:    0.5,
				core.CueFinish:    0.5,
			},
		},
		Assets: asset.Catalog{
			core.ZoneSurface: {Ground: "Textures/sand.bmp", Sky: "Textures/blu-sky-3.bmp"},
			core.ZoneCave:    {Ground: "Textures/caveground.bmp", Sky: "Textures/caveground.bmp"},
		},
		Spectator: Spectator{Path: "/frames"},
		Log:       Log{Dir: "logs"},
	}
}

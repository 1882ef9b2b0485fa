package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/oasis/core"
	"github.com/lixenwraith/oasis/interaction"
	"github.com/lixenwraith/oasis/vmath"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 180, cfg.Session.Countdown)
	assert.Equal(t, 8, cfg.World.Headings)
	assert.Len(t, cfg.Quotas, 3)
	assert.Equal(t, 0.5, cfg.Margins[core.CategoryEnemy])

	var finish, damage, collect int
	for _, r := range cfg.Regions {
		switch r.Effect {
		case interaction.EffectFinish:
			finish++
		case interaction.EffectDamage:
			damage++
		case interaction.EffectCollectOnce:
			collect++
		}
	}
	assert.Equal(t, 1, finish)
	assert.Equal(t, 6, damage)
	assert.Equal(t, 3, collect)
}

func TestCollectRegionsLinkStatics(t *testing.T) {
	cfg := Default()
	labels := map[string]bool{}
	for _, s := range cfg.Statics {
		labels[s.Template.Label] = true
	}
	for _, r := range cfg.Regions {
		if r.Entity != "" {
			assert.True(t, labels[r.Entity], "region %s links missing entity %s", r.Name, r.Entity)
		}
	}
}

func TestDecodeOverlay(t *testing.T) {
	doc := `
world:
  headings: 4
session:
  countdown: 60
margins:
  enemy: 0.25
regions:
  - name: exit
    bounds: {min_x: 0, max_x: 2, min_z: 0, max_z: 2}
    effect: finish
    zone: surface
    one_shot: true
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.World.Headings)
	assert.Equal(t, 60, cfg.Session.Countdown)
	assert.Equal(t, vmath.R(-37, 59, -53, 50), cfg.World.Bounds, "untouched fields keep defaults")
	assert.Equal(t, 0.25, cfg.Margins[core.CategoryEnemy])
	assert.Equal(t, 0.3, cfg.Margins[core.CategoryObstacle], "maps merge")
	require.Len(t, cfg.Regions, 1, "lists replace")
	assert.Equal(t, interaction.EffectFinish, cfg.Regions[0].Effect)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"heading mode":     "world: {headings: 6}",
		"inverted bounds":  "world: {bounds: {min_x: 5, max_x: 1, min_z: 0, max_z: 1}}",
		"unknown category": "margins: {dragon: 1}",
		"unknown effect":   "regions: [{name: a, effect: teleport}]",
		"unknown field":    "world: {teleport: true}",
		"tick rate":        "timing: {sim_hz: 0}",
		"upward gravity":   "world: {gravity: 0.3}",
		"negative margin":  "margins: {enemy: -1}",
		"duplicate region": "regions: [{name: a, bounds: {max_x: 1, max_z: 1}}, {name: a, bounds: {max_x: 1, max_z: 1}}]",
		"player category":  "player: {category: enemy}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session: {countdown: 30}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Session.Countdown)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

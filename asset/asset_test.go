package asset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/oasis/core"
)

func TestCatalogFor(t *testing.T) {
	c := Catalog{
		core.ZoneSurface: {Ground: "Textures/sand.bmp", Sky: "Textures/blu-sky-3.bmp"},
		core.ZoneCave:    {Ground: "Textures/caveground.bmp"},
	}

	s, err := c.For(core.ZoneCave)
	require.NoError(t, err)
	assert.Equal(t, []string{"Textures/caveground.bmp"}, s.Paths())

	_, err = Catalog{}.For(core.ZoneCave)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestCachingLoader(t *testing.T) {
	calls := 0
	fail := true
	inner := LoaderFunc[string](func(p string) (string, error) {
		calls++
		if fail {
			return "", ErrAssetNotFound
		}
		return Stem(p), nil
	})
	l := NewCachingLoader[string](inner)

	_, err := l.Load("models/snake/snake.3ds")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetNotFound))
	assert.Zero(t, l.Len())

	fail = false
	for range 3 {
		v, err := l.Load("models/snake/snake.3ds")
		require.NoError(t, err)
		assert.Equal(t, "snake", v)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, l.Len())
}

func TestStem(t *testing.T) {
	assert.Equal(t, "blu-sky-3", Stem("Textures/blu-sky-3.bmp"))
	assert.Equal(t, "aladdin", Stem(`models\aladdin\Aladdin.3DS`))
	assert.Equal(t, "rock", Stem("rock"))
}

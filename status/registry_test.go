package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterIsCached(t *testing.T) {
	r := NewRegistry()
	a := r.Counter(Ticks)
	b := r.Counter(Ticks)
	require.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), b.Load())
}

func TestGaugeConcurrentAdd(t *testing.T) {
	r := NewRegistry()
	g := r.Gauge(SpectatorViewers)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50.0, g.Get())

	g.Set(2.5)
	assert.Equal(t, 2.5, g.Get())
}

func TestSnapshotAndFields(t *testing.T) {
	r := NewRegistry()
	r.Counter(Pickups).Add(2)
	r.Counter(Collisions).Add(1)
	r.Gauge(SpectatorViewers).Set(4)

	assert.Equal(t, map[string]float64{
		Collisions:       1,
		Pickups:          2,
		SpectatorViewers: 4,
	}, r.Snapshot())

	fields := r.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, Collisions, fields[0].Key)
	assert.Equal(t, Pickups, fields[1].Key)
	assert.Equal(t, SpectatorViewers, fields[2].Key)
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hakenslash/ecs"
)

type fakeSource struct {
	sinks []func(ecs.Event)
	hooks []func(uint64)
}

func (f *fakeSource) Subscribe(fn func(ecs.Event)) { f.sinks = append(f.sinks, fn) }
func (f *fakeSource) OnTick(fn func(uint64))       { f.hooks = append(f.hooks, fn) }

func (f *fakeSource) emit(evt ecs.Event) {
	for _, s := range f.sinks {
		s(evt)
	}
}

func (f *fakeSource) tick(n uint64) {
	for _, h := range f.hooks {
		h(n)
	}
}

func TestCollectorCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	src := &fakeSource{}
	c.Attach(src)

	src.tick(1)
	src.tick(2)
	src.emit(ecs.Event{Type: ecs.EventKill, Data: ecs.KillData{Kind: "melee"}})
	src.emit(ecs.Event{Type: ecs.EventKill, Data: ecs.KillData{Kind: "melee"}})
	src.emit(ecs.Event{Type: ecs.EventKill, Data: ecs.KillData{Kind: "ranged"}})
	src.emit(ecs.Event{Type: ecs.EventProjectileSpawn})
	src.emit(ecs.Event{Type: ecs.EventDeflect})
	src.emit(ecs.Event{Type: ecs.EventPlayerHit, Data: ecs.HitData{Source: "bullet", Amount: 1, Health: 97}})
	src.emit(ecs.Event{Type: ecs.EventEscalation})
	src.emit(ecs.Event{Type: ecs.EventLanded})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ticks))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.kills.WithLabelValues("melee")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.kills.WithLabelValues("ranged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.bullets))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.deflects))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.playerHits.WithLabelValues("bullet")))
	assert.Equal(t, 97.0, testutil.ToFloat64(c.health))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.escalations))
}

func TestNewCollectorRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

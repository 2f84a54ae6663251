package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/ecs"
)

const namespace = "hakenslash"

// Source is what a Collector listens to; *session.Session satisfies it.
type Source interface {
	Subscribe(func(ecs.Event))
	OnTick(func(uint64))
}

// Collector counts simulation activity as Prometheus metrics.
type Collector struct {
	ticks       prometheus.Counter
	kills       *prometheus.CounterVec
	bullets     prometheus.Counter
	deflects    prometheus.Counter
	playerHits  *prometheus.CounterVec
	escalations prometheus.Counter
	health      prometheus.Gauge
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// uses the default registerer. Create one per process and Attach each new
// session to it.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Fixed simulation steps run.",
		}),
		kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kills_total",
			Help:      "Enemies killed by the player, by enemy kind.",
		}, []string{"kind"}),
		bullets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bullets_spawned_total",
			Help:      "Bullets fired by ranged enemies.",
		}),
		deflects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bullets_deflected_total",
			Help:      "Bullets reflected by the player's weapon.",
		}),
		playerHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_hits_total",
			Help:      "Damage events applied to the player, by source.",
		}, []string{"source"}),
		escalations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escalations_total",
			Help:      "Difficulty escalations.",
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_health",
			Help:      "Player health after the last hit.",
		}),
	}

	for _, m := range []prometheus.Collector{c.ticks, c.kills, c.bullets, c.deflects, c.playerHits, c.escalations, c.health} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Attach starts counting events and ticks from src.
func (c *Collector) Attach(src Source) {
	src.Subscribe(c.Observe)
	src.OnTick(func(uint64) { c.ticks.Inc() })
}

// Observe updates the counters for one event.
func (c *Collector) Observe(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventKill:
		kind := "unknown"
		if data, ok := evt.Data.(ecs.KillData); ok {
			kind = data.Kind
		}
		c.kills.WithLabelValues(kind).Inc()
	case ecs.EventProjectileSpawn:
		c.bullets.Inc()
	case ecs.EventDeflect:
		c.deflects.Inc()
	case ecs.EventPlayerHit:
		source := "unknown"
		if data, ok := evt.Data.(ecs.HitData); ok {
			source = data.Source
			c.health.Set(float64(data.Health))
		}
		c.playerHits.WithLabelValues(source).Inc()
	case ecs.EventEscalation:
		c.escalations.Inc()
	}
}

// Serve exposes /metrics on addr in the background. The returned server can
// be shut down by the caller.
func Serve(addr string, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server")
		}
	}()
	return srv
}

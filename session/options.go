package session

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/component"
	"github.com/milk9111/hakenslash/ecs/system"
)

type options struct {
	log     zerolog.Logger
	seed    int64
	tps     int
	fsm     *system.FSMDef
	scripts *system.RoamScripts
	table   *component.CoefficientTable
}

// Option configures a Session.
type Option func(*options)

func defaultOptions() options {
	return options{
		log:  zerolog.Nop(),
		seed: 1,
		tps:  common.TargetTPS,
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithSeed seeds the session RNG. Equal seeds and inputs replay equal runs.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithTPS sets the tick rate. Properties must already be converted for it.
func WithTPS(tps int) Option {
	return func(o *options) {
		if tps > 0 {
			o.tps = tps
		}
	}
}

func WithFSM(fsm *system.FSMDef) Option {
	return func(o *options) { o.fsm = fsm }
}

func WithScripts(scripts *system.RoamScripts) Option {
	return func(o *options) { o.scripts = scripts }
}

// WithCoefficientTable shares a binomial table between sessions.
func WithCoefficientTable(table *component.CoefficientTable) Option {
	return func(o *options) { o.table = table }
}

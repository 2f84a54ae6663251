package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/ecs/entity"
)

func pressAttack(t *testing.T, w *ecs.World, player ecs.Entity) {
	t.Helper()
	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("player has no input")
	}
	*in = component.Input{AttackPressed: true}
}

func TestCombatKillPolicies(t *testing.T) {
	cases := []struct {
		name        string
		policy      common.KillPolicy
		wantAlive   bool
		wantDormant bool
		wantRemoved bool
	}{
		{"respawn", common.KillRespawn, true, false, false},
		{"remove", common.KillRemove, false, false, true},
		{"reserve", common.KillReserve, true, true, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			props := testProps()
			props.Combat.KillPolicy = c.policy
			player := mustPlayer(t, w, cp.Vector{X: 100, Y: 100})

			spawn := cp.Vector{X: 500, Y: 500}
			melee, err := entity.NewMeleeEnemy(w, spawn, props.Enemy.HalfExtents, entity.MeleeConfig{}, false, 0)
			if err != nil {
				t.Fatalf("new melee: %v", err)
			}
			if _, err := entity.NewMeleeEnemy(w, spawn, props.Enemy.HalfExtents, entity.MeleeConfig{}, true, 3); err != nil {
				t.Fatalf("new reserve melee: %v", err)
			}
			mustBody(t, w, melee).Position = cp.Vector{X: 150, Y: 100}
			mustVelocity(t, w, melee).Vector = cp.Vector{X: 2, Y: 3}

			pressAttack(t, w, player)
			NewCombatSystem(props).Update(w)

			if w.IsAlive(melee) != c.wantAlive {
				t.Fatalf("expected alive=%v", c.wantAlive)
			}
			if c.wantAlive {
				if got := mustBody(t, w, melee).Position; got != spawn {
					t.Fatalf("expected enemy back at spawn, got %v", got)
				}
				if got := mustVelocity(t, w, melee).Vector; got != (cp.Vector{}) {
					t.Fatalf("expected velocity reset, got %v", got)
				}
			}
			d, dormant := ecs.Get(w, melee, component.DormantComponent.Kind())
			if dormant != c.wantDormant {
				t.Fatalf("expected dormant=%v", c.wantDormant)
			}
			if dormant && d.Order != 4 {
				t.Fatalf("expected enemy queued behind the reserve, got order %d", d.Order)
			}

			kills := eventsOf(w.Events().Drain(), ecs.EventKill)
			if len(kills) != 1 {
				t.Fatalf("expected 1 kill event, got %d", len(kills))
			}
			data := kills[0].Data.(ecs.KillData)
			if data.Kind != KindMelee || data.Kills != 1 || data.Removed != c.wantRemoved {
				t.Fatalf("unexpected kill data %+v", data)
			}
		})
	}
}

func TestCombatRespectsCooldown(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 100, Y: 100})
	sys := NewCombatSystem(props)

	pressAttack(t, w, player)
	sys.Update(w)
	atk, _ := ecs.Get(w, player, component.AttackComponent.Kind())
	if atk.Cooldown != props.Combat.AttackCooldown || atk.Animation != props.Combat.AttackAnimation {
		t.Fatalf("expected timers set, got %+v", atk)
	}

	sys.Update(w)
	if got := len(eventsOf(w.Events().Drain(), ecs.EventAttack)); got != 1 {
		t.Fatalf("expected 1 attack while cooling down, got %d", got)
	}

	cd := NewCooldownSystem(common.Timestep)
	for i := 0; i < 46; i++ {
		cd.Update(w)
	}
	if !atk.CanSwing() || atk.Swinging() {
		t.Fatalf("expected timers elapsed, got %+v", atk)
	}
	sys.Update(w)
	if got := len(eventsOf(w.Events().Drain(), ecs.EventAttack)); got != 1 {
		t.Fatalf("expected a new attack after cooldown, got %d", got)
	}
}

func TestCombatIgnoresHeldAttack(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	mustPlayer(t, w, cp.Vector{X: 100, Y: 100})

	NewCombatSystem(props).Update(w)

	if got := w.Events().Len(); got != 0 {
		t.Fatalf("expected no events without an attack edge, got %d", got)
	}
}

func TestCombatSparesDormantAndDistantEnemies(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 100, Y: 100})
	dormant, err := entity.NewMeleeEnemy(w, cp.Vector{X: 150, Y: 100}, props.Enemy.HalfExtents, entity.MeleeConfig{}, true, 0)
	if err != nil {
		t.Fatalf("new melee: %v", err)
	}
	distant, err := entity.NewMeleeEnemy(w, cp.Vector{X: 400, Y: 100}, props.Enemy.HalfExtents, entity.MeleeConfig{}, false, 0)
	if err != nil {
		t.Fatalf("new melee: %v", err)
	}

	pressAttack(t, w, player)
	NewCombatSystem(props).Update(w)

	if got := mustBody(t, w, dormant).Position; got != (cp.Vector{X: 150, Y: 100}) {
		t.Fatalf("dormant enemy was hit")
	}
	if !w.IsAlive(distant) {
		t.Fatalf("distant enemy was hit")
	}
	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if pl.Kills != 0 {
		t.Fatalf("expected no kills, got %d", pl.Kills)
	}
}

func TestCombatKillsRangedAndDeflectsBullets(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 100, Y: 100})
	ranged, err := entity.NewRangedEnemy(w, cp.Vector{X: 160, Y: 100}, props.Enemy.HalfExtents)
	if err != nil {
		t.Fatalf("new ranged: %v", err)
	}
	bullet, err := entity.NewBullet(w, ranged, cp.Vector{X: 130, Y: 80}, cp.Vector{X: -3, Y: 1}, 300, cp.Vector{X: 4, Y: 4})
	if err != nil {
		t.Fatalf("new bullet: %v", err)
	}

	pressAttack(t, w, player)
	NewCombatSystem(props).Update(w)

	if w.IsAlive(ranged) {
		t.Fatalf("ranged enemy under the weapon should die")
	}
	b, ok := ecs.Get(w, bullet, component.BulletComponent.Kind())
	if !ok {
		t.Fatalf("deflected bullet should survive")
	}
	if !b.Deflected || b.Direction.X != 3 || b.Direction.Y != -1 {
		t.Fatalf("expected reversed deflected bullet, got %+v", b)
	}

	evts := w.Events().Drain()
	if got := len(eventsOf(evts, ecs.EventDeflect)); got != 1 {
		t.Fatalf("expected 1 deflect event, got %d", got)
	}
	kills := eventsOf(evts, ecs.EventKill)
	if len(kills) != 1 || kills[0].Data.(ecs.KillData).Kind != KindRanged {
		t.Fatalf("expected 1 ranged kill, got %+v", kills)
	}
}

func TestWeaponFollowsFacing(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 100, Y: 100})
	weapon, ok := w.First(component.WeaponComponent.Kind())
	if !ok {
		t.Fatalf("expected a weapon")
	}

	sys := NewWeaponSystem()
	sys.Update(w)
	if got := mustBody(t, w, weapon).Position; got != (cp.Vector{X: 140, Y: 100}) {
		t.Fatalf("expected weapon right of player, got %v", got)
	}

	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	pl.Facing = component.DirLeft
	mustBody(t, w, player).Position = cp.Vector{X: 200, Y: 50}
	sys.Update(w)
	if got := mustBody(t, w, weapon).Position; got != (cp.Vector{X: 160, Y: 50}) {
		t.Fatalf("expected weapon left of player, got %v", got)
	}
	if half := mustBody(t, w, weapon).HalfExtents; half != props.Combat.WeaponHalfExtents {
		t.Fatalf("unexpected weapon extents %v", half)
	}
}

func TestInputSystemCopiesSource(t *testing.T) {
	w := ecs.NewWorld()
	player := mustPlayer(t, w, cp.Vector{})
	src := &component.Input{MoveRight: true, AttackPressed: true}

	NewInputSystem(src).Update(w)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	if *in != *src {
		t.Fatalf("expected %+v, got %+v", *src, *in)
	}
}

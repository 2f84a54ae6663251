package ecs

// EventType identifies simulation events handed to presentation hooks.
type EventType string

const (
	EventAttack          EventType = "attack"
	EventKill            EventType = "kill"
	EventPlayerHit       EventType = "player_hit"
	EventProjectileSpawn EventType = "projectile_spawn"
	EventDeflect         EventType = "deflect"
	EventEscalation      EventType = "escalation"
	EventLanded          EventType = "landed"
)

// Event is a simulation event. Entity is the subject (killed enemy, spawned
// bullet, ...); Data carries an optional typed payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// KillData describes a kill event.
type KillData struct {
	Kind    string
	Kills   int
	Removed bool
}

// HitData describes damage applied to the player.
type HitData struct {
	Source string
	Amount int
	Health int
}

// EscalationData describes a difficulty escalation.
type EscalationData struct {
	RangedAdded   int
	MeleePromoted bool
	SpeedModifier float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

package component

// Health is a reusable health pool for any entity that can take damage.
type Health struct {
	Max     int
	Current int
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity has health left.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// Damage subtracts amount and returns the remaining health. Health may go
// below zero; the caller decides what zero means.
func (h *Health) Damage(amount int) int {
	if h == nil {
		return 0
	}
	if amount > 0 {
		h.Current -= amount
	}
	return h.Current
}

// SetMax sets the maximum health value and clamps Current if needed.
func (h *Health) SetMax(v int) {
	if h == nil {
		return
	}
	h.Max = v
	if h.Max <= 0 {
		h.Max = 1
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

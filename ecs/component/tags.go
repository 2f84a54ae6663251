package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]("player_tag")

// Dormant marks reserve enemies that are neither simulated nor drawn.
type Dormant struct {
	// Order is the position in the reserve queue.
	Order int
}

var DormantComponent = NewComponent[Dormant]("dormant")

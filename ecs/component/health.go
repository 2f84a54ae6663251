package component

import shared "github.com/milk9111/hakenslash/component"

var HealthComponent = NewComponent[shared.Health]("health")

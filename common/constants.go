package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TargetTPS is the fixed simulation rate. Per-second properties are
	// divided by it at load time.
	TargetTPS = 60
)

// Timestep is the length of one simulation tick in seconds.
const Timestep = 1.0 / float64(TargetTPS)

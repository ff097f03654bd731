package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// DefaultGravity is the downward acceleration in pixels per second squared.
	DefaultGravity = 900.0

	// MaxDelta caps a measured frame delta so a stall never tunnels bodies.
	MaxDelta = 1.0 / 20.0
)

package main

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

// Lifetime counts down in seconds; the entity expires at zero.
type Lifetime struct {
	Remaining float64
}

package core

import "math/rand"

// Move advances m by its velocity in its current direction.
// Bounds are the caller's concern; only a negative result is refused,
// in which case m is left where it was.
func Move(m Movement) error {
	next, err := m.Position().Step(m.Direction(), m.Velocity())
	if err != nil {
		return err
	}
	m.PlaceAt(next)
	return nil
}

// Rotate turns r to a uniformly random heading different from the current one
func Rotate(r Rotation, rng *rand.Rand) {
	r.SetDirection(r.Direction().OtherThan(rng))
}

package core

import (
	"fmt"
	"math/rand"
)

// Direction represents a compass heading
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns the four headings in declaration order
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// RandomDirection picks one of the four headings uniformly
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.Intn(4))
}

// OtherThan picks uniformly among the three headings that differ from d
func (d Direction) OtherThan(rng *rand.Rand) Direction {
	// Skip over d by offsetting 1..3 around the compass.
	return Direction((int(d) + 1 + rng.Intn(3)) % 4)
}

// IsValid reports whether d is one of the four headings
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// String returns the lower-case name of the heading
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

package core

import (
	"fmt"
	"math/rand"
)

// Position is a cell on the field. Row grows southwards, Col grows eastwards.
type Position struct {
	Row, Col int
}

// NewPosition creates a position from a row and a column
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// ZeroPosition returns the top-left cell
func ZeroPosition() Position {
	return Position{}
}

// RandomPosition draws both coordinates independently and uniformly from [0, bound)
func RandomPosition(rng *rand.Rand, bound int) (Position, error) {
	if bound <= 0 {
		return Position{}, fmt.Errorf("random position with bound %d: %w", bound, ErrInvalidBound)
	}
	return Position{Row: rng.Intn(bound), Col: rng.Intn(bound)}, nil
}

// InBounds checks if the position lies on a size x size field
func (p Position) InBounds(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// Step returns the position velocity cells away in direction d.
// Coordinates are checked before subtracting, so a step that would go
// below zero is reported instead of being produced.
func (p Position) Step(d Direction, velocity int) (Position, error) {
	switch d {
	case North:
		if p.Row < velocity {
			return p, ErrNegativeCoordinate
		}
		return Position{Row: p.Row - velocity, Col: p.Col}, nil
	case South:
		return Position{Row: p.Row + velocity, Col: p.Col}, nil
	case East:
		return Position{Row: p.Row, Col: p.Col + velocity}, nil
	case West:
		if p.Col < velocity {
			return p, ErrNegativeCoordinate
		}
		return Position{Row: p.Row, Col: p.Col - velocity}, nil
	default:
		return p, fmt.Errorf("step towards %s: invalid direction", d)
	}
}

// Equal checks if two positions are equal
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

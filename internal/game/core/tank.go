package core

import (
	"math/rand"

	"github.com/google/uuid"
)

// DefaultVelocity is the number of cells a tank advances per turn
const DefaultVelocity = 1

// Visual is anything that can be drawn as a single glyph
type Visual interface {
	Glyph() rune
	String() string
}

// Movement exposes what Move needs to advance an object
type Movement interface {
	Velocity() int
	Position() Position
	Direction() Direction
	PlaceAt(Position)
}

// Rotation exposes what Rotate needs to turn an object
type Rotation interface {
	Direction() Direction
	SetDirection(Direction)
}

// Player is an object that can be drawn, moved and rotated
type Player interface {
	Visual
	Movement
	Rotation
}

// Tank is the only Player kind on the field.
// It performs no validation; the field enforces all invariants.
type Tank struct {
	id        string
	glyph     rune
	velocity  int
	position  Position
	direction Direction
}

var _ Player = (*Tank)(nil)

// NewTank creates a tank at pos facing a random direction
func NewTank(glyph rune, pos Position, rng *rand.Rand) *Tank {
	return &Tank{
		id:        uuid.NewString(),
		glyph:     glyph,
		velocity:  DefaultVelocity,
		position:  pos,
		direction: RandomDirection(rng),
	}
}

func (t *Tank) ID() string           { return t.id }
func (t *Tank) Glyph() rune          { return t.glyph }
func (t *Tank) String() string       { return string(t.glyph) }
func (t *Tank) Velocity() int        { return t.velocity }
func (t *Tank) Position() Position   { return t.position }
func (t *Tank) Direction() Direction { return t.direction }

// PlaceAt overwrites the position without bounds checking
func (t *Tank) PlaceAt(p Position) { t.position = p }

// SetDirection overwrites the heading
func (t *Tank) SetDirection(d Direction) { t.direction = d }

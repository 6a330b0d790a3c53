package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/tanks/internal/game/core"
)

const (
	DefaultPlacementAttempts = 1000
	DefaultRotationAttempts  = 64
)

// Observer is told about every boundary correction and every step
type Observer interface {
	TankRotated(p core.Player, from, to core.Direction)
	TankMoved(p core.Player, from, to core.Position, shared bool)
}

// FieldOption configures a Field
type FieldOption func(*Field)

// WithPlacementAttempts caps the random draws spent placing one tank
func WithPlacementAttempts(n int) FieldOption {
	return func(f *Field) {
		if n > 0 {
			f.placementAttempts = n
		}
	}
}

// WithRotationAttempts caps the rotations spent freeing one tank from the boundary
func WithRotationAttempts(n int) FieldOption {
	return func(f *Field) {
		if n > 0 {
			f.rotationAttempts = n
		}
	}
}

// WithObserver registers an observer for rotations and moves
func WithObserver(o Observer) FieldOption {
	return func(f *Field) {
		if o != nil {
			f.observers = append(f.observers, o)
		}
	}
}

// WithFieldLogger sets the logger used for per-tank debug output
func WithFieldLogger(logger zerolog.Logger) FieldOption {
	return func(f *Field) {
		f.logger = logger.With().Str("component", "field").Logger()
	}
}

// Field is a size x size grid of cells plus the tanks moving on it.
// Outside Move the occupancy of the grid mirrors the tank positions.
type Field struct {
	size  int
	tanks []core.Player
	cells [][]Cell
	rng   *rand.Rand

	placementAttempts int
	rotationAttempts  int
	observers         []Observer
	logger            zerolog.Logger
}

// NewField builds the grid and places every tank, in order, on a random free cell
func NewField(size int, tanks []core.Player, rng *rand.Rand, opts ...FieldOption) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidFieldSize, size)
	}
	if len(tanks) > size*size {
		return nil, fmt.Errorf("%w: %d tanks on a %dx%d field", core.ErrTooManyTanks, len(tanks), size, size)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f := &Field{
		size:              size,
		tanks:             tanks,
		rng:               rng,
		placementAttempts: DefaultPlacementAttempts,
		rotationAttempts:  DefaultRotationAttempts,
		logger:            log.With().Str("component", "field").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.cells = make([][]Cell, size)
	for row := range f.cells {
		f.cells[row] = make([]Cell, size)
	}

	for _, p := range f.tanks {
		if err := f.placeRandomly(p); err != nil {
			return nil, core.WrapTankError(p, err)
		}
	}

	return f, nil
}

func (f *Field) placeRandomly(p core.Player) error {
	for attempt := 0; attempt < f.placementAttempts; attempt++ {
		pos, err := core.RandomPosition(f.rng, f.size)
		if err != nil {
			return err
		}
		cell := f.cellAt(pos)
		if cell.IsOccupied() {
			continue
		}
		cell.Occupy(p)
		p.PlaceAt(pos)
		f.logger.Debug().
			Str("tank", p.String()).
			Stringer("position", pos).
			Int("attempts", attempt+1).
			Msg("Tank placed")
		return nil
	}
	return fmt.Errorf("%w after %d attempts", core.ErrPlacementExhausted, f.placementAttempts)
}

// Move advances every tank by one step, in list order
func (f *Field) Move() error {
	for _, p := range f.tanks {
		if err := f.moveTank(p); err != nil {
			return core.WrapTankError(p, err)
		}
	}
	return nil
}

func (f *Field) moveTank(p core.Player) error {
	from := p.Position()
	if !from.InBounds(f.size) {
		return fmt.Errorf("%w: %s on a field of size %d", core.ErrOutOfBounds, from, f.size)
	}

	f.vacate(p, from)

	for rotations := 0; f.blocked(p); rotations++ {
		if rotations >= f.rotationAttempts {
			f.cellAt(from).Occupy(p)
			return fmt.Errorf("%w after %d attempts at %s", core.ErrRotationExhausted, rotations, from)
		}
		before := p.Direction()
		core.Rotate(p, f.rng)
		for _, o := range f.observers {
			o.TankRotated(p, before, p.Direction())
		}
	}

	if err := core.Move(p); err != nil {
		f.cellAt(from).Occupy(p)
		return err
	}

	to := p.Position()
	if !to.InBounds(f.size) {
		p.PlaceAt(from)
		f.cellAt(from).Occupy(p)
		return fmt.Errorf("%w: %s on a field of size %d", core.ErrOutOfBounds, to, f.size)
	}

	// Tanks do not collide; a shared cell simply shows the latest arrival.
	cell := f.cellAt(to)
	shared := cell.IsOccupied()
	cell.Occupy(p)

	for _, o := range f.observers {
		o.TankMoved(p, from, to, shared)
	}
	return nil
}

// vacate clears p's cell. If another tank still stands there it takes the cell over.
func (f *Field) vacate(p core.Player, pos core.Position) {
	cell := f.cellAt(pos)
	if cell.Occupant() != p {
		return
	}
	cell.Clear()
	for _, other := range f.tanks {
		if other != p && other.Position().Equal(pos) {
			cell.Occupy(other)
			return
		}
	}
}

// blocked reports whether p's next step would leave the grid
func (f *Field) blocked(p core.Player) bool {
	pos := p.Position()
	edge := f.size - 1
	switch p.Direction() {
	case core.North:
		return pos.Row == 0
	case core.South:
		return pos.Row == edge
	case core.West:
		return pos.Col == 0
	case core.East:
		return pos.Col == edge
	default:
		return true
	}
}

func (f *Field) cellAt(pos core.Position) *Cell {
	return &f.cells[pos.Row][pos.Col]
}

// CellAt returns the cell at pos, or nil when pos is off the field
func (f *Field) CellAt(pos core.Position) *Cell {
	if !pos.InBounds(f.size) {
		return nil
	}
	return f.cellAt(pos)
}

func (f *Field) Size() int            { return f.size }
func (f *Field) Tanks() []core.Player { return f.tanks }

// Occupied returns the positions of all occupied cells in row-major order
func (f *Field) Occupied() []core.Position {
	var out []core.Position
	for row := range f.cells {
		for col := range f.cells[row] {
			if f.cells[row][col].IsOccupied() {
				out = append(out, core.NewPosition(row, col))
			}
		}
	}
	return out
}

// String renders the grid as text: a leading newline, then one line per row.
// It only reads the grid.
func (f *Field) String() string {
	var sb strings.Builder
	sb.Grow(1 + f.size*(f.size+1))

	sb.WriteString("\n")
	for row := range f.cells {
		for col := range f.cells[row] {
			sb.WriteString(f.cells[row][col].String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

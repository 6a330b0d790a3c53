package game

import "github.com/mitchelldurbincs/tanks/internal/game/core"

// EmptyGlyph is drawn for a cell without a tank
const EmptyGlyph = "."

// Cell is one slot of the field. It references at most one tank and never owns it.
type Cell struct {
	occupant core.Player
}

func (c *Cell) Occupant() core.Player { return c.occupant }
func (c *Cell) IsOccupied() bool      { return c.occupant != nil }

// Occupy makes p the occupant, replacing any previous one
func (c *Cell) Occupy(p core.Player) { c.occupant = p }

// Clear marks the cell unoccupied
func (c *Cell) Clear() { c.occupant = nil }

// String returns the occupant's glyph or EmptyGlyph
func (c *Cell) String() string {
	if c.occupant == nil {
		return EmptyGlyph
	}
	return c.occupant.String()
}

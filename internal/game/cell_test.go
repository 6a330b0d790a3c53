package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/tanks/internal/game/core"
	"github.com/mitchelldurbincs/tanks/internal/testutil"
)

func TestCell(t *testing.T) {
	var cell Cell
	assert.False(t, cell.IsOccupied())
	assert.Nil(t, cell.Occupant())
	assert.Equal(t, ".", cell.String())

	tank := core.NewTank('H', core.ZeroPosition(), testutil.NewTestRNG(1))
	cell.Occupy(tank)
	assert.True(t, cell.IsOccupied())
	assert.Same(t, tank, cell.Occupant())
	assert.Equal(t, "H", cell.String())

	cell.Clear()
	assert.False(t, cell.IsOccupied())
	assert.Equal(t, EmptyGlyph, cell.String())
}

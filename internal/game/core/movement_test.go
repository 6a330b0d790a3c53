package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/tanks/internal/testutil"
)

func newTestTank(t *testing.T, pos Position, dir Direction) *Tank {
	t.Helper()
	tank := NewTank('T', pos, testutil.NewTestRNG(3))
	tank.SetDirection(dir)
	return tank
}

func TestMove_EachDirection(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Position
	}{
		{North, NewPosition(1, 2)},
		{South, NewPosition(3, 2)},
		{East, NewPosition(2, 3)},
		{West, NewPosition(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			// Arrange
			tank := newTestTank(t, NewPosition(2, 2), tt.dir)

			// Act
			err := Move(tank)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tank.Position())
			assert.Equal(t, tt.dir, tank.Direction(), "Move must not change the heading")
		})
	}
}

func TestMove_RefusesNegativeCoordinate(t *testing.T) {
	tank := newTestTank(t, NewPosition(0, 0), North)

	err := Move(tank)

	assert.ErrorIs(t, err, ErrNegativeCoordinate)
	assert.Equal(t, NewPosition(0, 0), tank.Position(), "tank should stay in place")
}

func TestMove_DoesNotClampUpperBound(t *testing.T) {
	// The field guards the far edges; Move itself has no notion of size
	tank := newTestTank(t, NewPosition(9, 9), South)

	require.NoError(t, Move(tank))
	assert.Equal(t, NewPosition(10, 9), tank.Position())
}

func TestRotate_AlwaysChangesDirection(t *testing.T) {
	rng := testutil.NewTestRNG(99)
	tank := newTestTank(t, ZeroPosition(), North)

	for i := 0; i < 100; i++ {
		before := tank.Direction()
		Rotate(tank, rng)
		assert.NotEqual(t, before, tank.Direction(), "rotation %d kept the heading", i)
	}
}

func TestNewTank(t *testing.T) {
	tank := NewTank('H', ZeroPosition(), testutil.NewTestRNG(5))

	assert.Equal(t, 'H', tank.Glyph())
	assert.Equal(t, "H", tank.String())
	assert.Equal(t, DefaultVelocity, tank.Velocity())
	assert.Equal(t, ZeroPosition(), tank.Position())
	assert.True(t, tank.Direction().IsValid())
	assert.NotEmpty(t, tank.ID())

	other := NewTank('O', ZeroPosition(), testutil.NewTestRNG(5))
	assert.NotEqual(t, tank.ID(), other.ID(), "tank ids should be unique")
}

func TestTank_Setters(t *testing.T) {
	tank := NewTank('H', ZeroPosition(), testutil.NewTestRNG(5))

	tank.PlaceAt(NewPosition(-4, 100))
	assert.Equal(t, NewPosition(-4, 100), tank.Position(), "PlaceAt performs no validation")

	tank.SetDirection(West)
	assert.Equal(t, West, tank.Direction())
}

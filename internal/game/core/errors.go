package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBound       = errors.New("bound must be positive")
	ErrNegativeCoordinate = errors.New("step would produce a negative coordinate")
	ErrOutOfBounds        = errors.New("position out of field bounds")
	ErrInvalidFieldSize   = errors.New("invalid field size")
	ErrTooManyTanks       = errors.New("more tanks than cells")
	ErrNoTanks            = errors.New("at least one tank is required")
	ErrPlacementExhausted = errors.New("could not place tank on a free cell")
	ErrRotationExhausted  = errors.New("could not rotate tank free of the boundary")
	ErrInvalidGlyph       = errors.New("glyph must be a single character")
	ErrDuplicateGlyph     = errors.New("glyph already used by another tank")
)

// WrapTankError annotates err with the glyph of the tank it happened to.
func WrapTankError(v Visual, err error) error {
	if err == nil {
		return nil
	}
	if v == nil {
		return fmt.Errorf("tank: %w", err)
	}
	return fmt.Errorf("tank %s: %w", v.String(), err)
}

// WrapTurnError annotates err with the turn number.
func WrapTurnError(turn int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("turn %d: %w", turn, err)
}

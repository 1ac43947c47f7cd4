package model

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for coordinates or indices outside the grid.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidBrightness is returned for brightness levels outside [0,1].
	// It wraps ErrOutOfRange.
	ErrInvalidBrightness = fmt.Errorf("invalid brightness: %w", ErrOutOfRange)
	// ErrInvalidSpriteShape is returned when a sprite is not 7x7.
	ErrInvalidSpriteShape = errors.New("invalid sprite shape")
	// ErrDeviceWrite wraps transport errors raised while rendering.
	ErrDeviceWrite = errors.New("device write failure")
)

func coordError(row, col int) error {
	return fmt.Errorf("coordinate (%d,%d): %w", row, col, ErrOutOfRange)
}

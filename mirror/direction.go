// Package mirror implements the symmetry compositor: one half or quadrant
// of a surface is treated as the authoritative source and reflected into
// the remaining area.
package mirror

import (
	"errors"
	"fmt"
	"strings"
)

// Direction selects which part of a surface is the mirror source.
type Direction int

const (
	// Left reflects the left half onto the right.
	Left Direction = iota
	// Right reflects the right half onto the left.
	Right
	// Up reflects the top half onto the bottom.
	Up
	// Down reflects the bottom half onto the top.
	Down
	// Both reflects the top-left quadrant into the other three.
	Both
)

// ErrUnknownDirection is returned by ParseDirection for unrecognized input.
var ErrUnknownDirection = errors.New("mirror: unknown direction")

// String returns the canonical keyword for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps a direction keyword to its Direction. Matching is
// case-insensitive and accepts the common aliases used by the front-end.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "top", "u", "t":
		return Up, nil
	case "down", "bottom", "d", "b":
		return Down, nil
	case "both", "quad", "all":
		return Both, nil
	}
	return Left, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

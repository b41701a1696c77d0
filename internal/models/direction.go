package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is returned by ParseDirection for unknown spellings.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is the way to move through a monitor's workspaces.
type Direction int

const (
	Next Direction = iota
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "next", "prev" and "previous", ignoring case and
// surrounding whitespace.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next":
		return Next, nil
	case "prev", "previous":
		return Previous, nil
	default:
		return Next, fmt.Errorf("%w %q (want next, prev or previous)", ErrInvalidDirection, s)
	}
}

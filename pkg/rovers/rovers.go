package rovers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rover identifies one of the three Mars rover missions
type Rover int

const (
	Curiosity Rover = iota
	Opportunity
	Spirit
)

// ErrUnknownRover is returned when a value does not name one of the three rovers
var ErrUnknownRover = errors.New("unknown rover")

var roverNames = [...]string{"Curiosity", "Opportunity", "Spirit"}

// All returns every rover in declaration order
func All() []Rover {
	return []Rover{Curiosity, Opportunity, Spirit}
}

// Valid reports whether r is one of the declared rovers
func (r Rover) Valid() bool {
	return r >= Curiosity && r <= Spirit
}

func (r Rover) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rover(%d)", int(r))
	}
	return roverNames[r]
}

// Slug returns the lower-case name used in API paths and URLs
func (r Rover) Slug() string {
	return strings.ToLower(r.String())
}

// ParseRover accepts a rover name or its ordinal, case-insensitively
func ParseRover(s string) (Rover, error) {
	s = strings.TrimSpace(s)
	for _, r := range All() {
		if strings.EqualFold(s, roverNames[r]) {
			return r, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Rover(n).Valid() {
		return Rover(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRover, s)
}
